package requestutil

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// HeaderUserID carries the authenticated user id set by the upstream gateway.
	HeaderUserID = "X-User-ID"
	// HeaderSessionID identifies a guest browser session.
	HeaderSessionID = "X-Session-ID"
	// GuestPrefix namespaces slip keys built from guest sessions. User ids may not use it.
	GuestPrefix = "guest:"
)

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
var identityPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:@-]{1,128}$`)
var useFallback atomic.Bool

// SanitizeRequestID validates the incoming request ID header and generates a new one when invalid.
func SanitizeRequestID(incoming string) string {
	if incoming != "" && requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID generates a random request ID with a time-based fallback.
func NewRequestID() string {
	var b [8]byte
	if !useFallback.Load() {
		if _, err := rand.Read(b[:]); err == nil {
			return hex.EncodeToString(b[:])
		}
	}
	return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000000000")))
}

// ClientIP extracts the client IP from X-Forwarded-For or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
		return forwarded
	}
	return r.RemoteAddr
}

// UserID returns the caller's user id, or "" when absent or malformed.
func UserID(r *http.Request) string {
	if r == nil {
		return ""
	}
	id := sanitizeIdentity(r.Header.Get(HeaderUserID))
	if strings.HasPrefix(strings.ToLower(id), GuestPrefix) {
		return ""
	}
	return id
}

// SessionID returns the guest session id from the header, falling back to the
// session query parameter for websocket upgrades.
func SessionID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := sanitizeIdentity(r.Header.Get(HeaderSessionID)); id != "" {
		return id
	}
	return sanitizeIdentity(r.URL.Query().Get("session"))
}

func sanitizeIdentity(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !identityPattern.MatchString(raw) {
		return ""
	}
	return raw
}
