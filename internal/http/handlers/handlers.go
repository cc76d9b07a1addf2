package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	appboard "github.com/preston-bernstein/football-slip-service/internal/app/board"
	appslips "github.com/preston-bernstein/football-slip-service/internal/app/slips"
	"github.com/preston-bernstein/football-slip-service/internal/http/requestutil"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/poller"
)

// NoticeStream upgrades a request into a live notice feed for one owner key.
type NoticeStream interface {
	ServeWS(w http.ResponseWriter, r *http.Request, key string) error
}

// Handler wires HTTP routes to the board and slip services.
type Handler struct {
	boards   *appboard.Service
	slips    *appslips.Service
	stream   NoticeStream
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. stream and statusFn may be nil.
func NewHandler(boards *appboard.Service, slips *appslips.Service, stream NoticeStream, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		boards:   boards,
		slips:    slips,
		stream:   stream,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "boards": status.Boards}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Leagues lists the selectable leagues in order.
func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"leagues": h.boards.Leagues()}, h.logger)
}

// Days lists the date tabs starting today.
func (h *Handler) Days(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"days": h.boards.Days()}, h.logger)
}

// Board returns the match table for a league and date with the caller's picks marked.
// Both parameters are optional and default to the first league and today.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	leagueKey, ok := parseLeague(r.URL.Query().Get("league"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "league must be a positive integer", logger)
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	slip, err := h.slips.Get(r.Context(), identity(r))
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	view, err := h.boards.View(leagueKey, date, slip)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Debug(logger, "served board",
		logging.FieldLeague, view.League.Key,
		logging.FieldDate, view.Date,
		logging.FieldCount, len(view.Rows),
	)
	writeJSON(w, http.StatusOK, view, logger)
}

func parseLeague(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	key, err := strconv.Atoi(raw)
	if err != nil || key <= 0 {
		return 0, false
	}
	return key, true
}

func identity(r *http.Request) appslips.Identity {
	return appslips.Identity{
		UserID:    requestutil.UserID(r),
		SessionID: requestutil.SessionID(r),
	}
}
