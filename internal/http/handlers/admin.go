package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/http/requestutil"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
)

// Refresher reloads every board from upstream.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints (e.g., board refresh).
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// RefreshBoards runs a poll cycle immediately. Guarded by the admin token; returns 401 if missing or invalid.
func (h *AdminHandler) RefreshBoards(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	start := time.Now()
	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Warn(logger, "admin refresh incomplete", logging.FieldError, err)
		writeError(w, r, http.StatusBadGateway, "refresh incomplete", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"durationMs": time.Since(start).Milliseconds(),
	}, logger)
	logging.Info(logger, "admin refresh complete", logging.FieldDurationMS, time.Since(start).Milliseconds())
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
