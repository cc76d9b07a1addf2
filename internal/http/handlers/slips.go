package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	appslips "github.com/preston-bernstein/football-slip-service/internal/app/slips"
	domainslips "github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
)

// Slip returns the caller's slip.
func (h *Handler) Slip(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	slip, err := h.slips.Get(r.Context(), identity(r))
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, slip, logger)
}

// Toggle adds or removes the pick behind one outcome cell.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	req, ok := h.pickRequest(w, r)
	if !ok {
		return
	}
	result, err := h.slips.Toggle(r.Context(), identity(r), req)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, result, logger)
}

// AddSelection adds a pick, refusing a second pick on the same match.
func (h *Handler) AddSelection(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	req, ok := h.pickRequest(w, r)
	if !ok {
		return
	}
	slip, err := h.slips.Add(r.Context(), identity(r), req)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusCreated, slip, logger)
}

// RemoveSelection drops the pick named by the homeTeam, awayTeam and selection query parameters.
func (h *Handler) RemoveSelection(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	home := strings.TrimSpace(q.Get("homeTeam"))
	away := strings.TrimSpace(q.Get("awayTeam"))
	kind := domainslips.Kind(strings.ToLower(strings.TrimSpace(q.Get("selection"))))
	if home == "" || away == "" {
		writeError(w, r, http.StatusBadRequest, "homeTeam and awayTeam are required", logger)
		return
	}
	if !kind.Valid() {
		writeNotice(w, r, domainslips.ErrInvalidKind, logger)
		return
	}
	slip, err := h.slips.Remove(r.Context(), identity(r), home, away, kind)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, slip, logger)
}

// Submit enters the caller's slip into a pool.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	result, err := h.slips.Submit(r.Context(), identity(r))
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	w.Header().Set("Location", result.Redirect)
	writeJSON(w, http.StatusCreated, result, logger)
}

// Clear discards the caller's slip.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if err := h.slips.Clear(r.Context(), identity(r)); err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Pool returns one of the caller's submitted pools.
func (h *Handler) Pool(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id := identity(r)
	if id.UserID == "" {
		writeNotice(w, r, domainslips.ErrLoginRequired, logger)
		return
	}
	pool, err := h.slips.Pool(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	if pool.UserID != id.UserID {
		writeError(w, r, http.StatusNotFound, "not found", logger)
		return
	}
	writeJSON(w, http.StatusOK, pool, logger)
}

// Notices streams the caller's notices over a websocket.
func (h *Handler) Notices(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.stream == nil {
		writeError(w, r, http.StatusServiceUnavailable, "notice stream not configured", logger)
		return
	}
	key := identity(r).Key()
	if key == "" {
		writeNotice(w, r, domainslips.ErrLoginRequired, logger)
		return
	}
	// The upgrader has already answered the client on failure.
	if err := h.stream.ServeWS(w, r, key); err != nil {
		logging.Debug(logger, "websocket upgrade failed", logging.FieldError, err)
	}
}

func (h *Handler) pickRequest(w http.ResponseWriter, r *http.Request) (appslips.PickRequest, bool) {
	logger := loggerFromContext(r, h.logger)
	var req appslips.PickRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", logger)
		return req, false
	}
	req.HomeTeam = strings.TrimSpace(req.HomeTeam)
	req.AwayTeam = strings.TrimSpace(req.AwayTeam)
	req.Date = strings.TrimSpace(req.Date)
	req.Selection = domainslips.Kind(strings.ToLower(string(req.Selection)))
	if req.HomeTeam == "" || req.AwayTeam == "" {
		writeError(w, r, http.StatusBadRequest, "homeTeam and awayTeam are required", logger)
		return req, false
	}
	if req.LeagueKey < 0 {
		writeError(w, r, http.StatusBadRequest, "league must be a positive integer", logger)
		return req, false
	}
	return req, true
}
