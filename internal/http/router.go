package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/preston-bernstein/football-slip-service/internal/http/handlers"
	"github.com/preston-bernstein/football-slip-service/internal/http/middleware"
	"github.com/preston-bernstein/football-slip-service/internal/http/requestutil"
	"github.com/preston-bernstein/football-slip-service/internal/metrics"
)

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Handler        *handlers.Handler
	Admin          *handlers.AdminHandler
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers HTTP routes and wraps them with CORS and request logging.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	h := cfg.Handler
	router := mux.NewRouter()
	router.NotFoundHandler = nethttp.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = nethttp.HandlerFunc(methodNotAllowed)

	router.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	router.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	router.HandleFunc("/leagues", h.Leagues).Methods(nethttp.MethodGet)
	router.HandleFunc("/days", h.Days).Methods(nethttp.MethodGet)
	router.HandleFunc("/board", h.Board).Methods(nethttp.MethodGet)

	router.HandleFunc("/slips/me", h.Slip).Methods(nethttp.MethodGet)
	router.HandleFunc("/slips/me", h.Clear).Methods(nethttp.MethodDelete)
	router.HandleFunc("/slips/me/toggle", h.Toggle).Methods(nethttp.MethodPost)
	router.HandleFunc("/slips/me/selections", h.AddSelection).Methods(nethttp.MethodPost)
	router.HandleFunc("/slips/me/selections", h.RemoveSelection).Methods(nethttp.MethodDelete)
	router.HandleFunc("/slips/me/submit", h.Submit).Methods(nethttp.MethodPost)

	router.HandleFunc("/pools/{id}", h.Pool).Methods(nethttp.MethodGet)
	router.HandleFunc("/ws", h.Notices).Methods(nethttp.MethodGet)

	if cfg.Admin != nil {
		router.HandleFunc("/admin/board/refresh", cfg.Admin.RefreshBoards).Methods(nethttp.MethodPost)
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodDelete, nethttp.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID", requestutil.HeaderUserID, requestutil.HeaderSessionID},
		ExposedHeaders: []string{"X-Request-ID", "Location"},
	})

	return middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics, c.Handler(router))
}

func notFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writePlainError(w, nethttp.StatusNotFound, "not found")
}

func methodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writePlainError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
}

func writePlainError(w nethttp.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
