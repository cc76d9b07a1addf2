package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appboard "github.com/preston-bernstein/football-slip-service/internal/app/board"
	domainslips "github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/http/middleware"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/store"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", logging.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody(r, message, ""), logger)
}

func errorBody(r *http.Request, message, code string) map[string]string {
	body := map[string]string{"error": message}
	if code != "" {
		body["code"] = code
	}
	if reqID := requestID(r); reqID != "" {
		body["requestId"] = reqID
	}
	return body
}

func requestID(r *http.Request) string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	return reqID
}

// writeNotice reports a refused slip action with its notice code.
func writeNotice(w http.ResponseWriter, r *http.Request, notice *domainslips.Notice, logger *slog.Logger) {
	writeJSON(w, noticeStatus(notice), errorBody(r, notice.Message, notice.Code), logger)
}

func noticeStatus(notice *domainslips.Notice) int {
	switch notice.Code {
	case domainslips.ErrLoginRequired.Code:
		return http.StatusUnauthorized
	case domainslips.ErrUnknownMatch.Code:
		return http.StatusNotFound
	case domainslips.ErrInvalidKind.Code:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

// writeServiceError maps service errors onto status codes. Unknown errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if notice, ok := domainslips.AsNotice(err); ok {
		writeNotice(w, r, notice, logger)
		return
	}
	switch {
	case errors.Is(err, appboard.ErrUnknownLeague):
		writeError(w, r, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, appboard.ErrInvalidDate):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, appboard.ErrNotLoaded):
		writeError(w, r, http.StatusServiceUnavailable, err.Error(), logger)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found", logger)
	default:
		logging.Error(logger, "request failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal error", logger)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
