package sportradar

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/providers"
)

func TestNormalizeBaseURLTrimsTrailingSlashAndDefaults(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", defaultBaseURL},
		{"https://api.example.com/", "https://api.example.com"},
		{"https://api.example.com", "https://api.example.com"},
	}

	for _, c := range cases {
		if got := normalizeBaseURL(c.input, defaultBaseURL); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestResolveHTTPClientDefaultsTimeout(t *testing.T) {
	client := resolveHTTPClient(nil)
	httpClient, ok := client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client)
	}
	if httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected timeout %s, got %s", defaultHTTPTimeout, httpClient.Timeout)
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	client := resolveHTTPClient(custom)
	if client != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestResolveMaxPages(t *testing.T) {
	if resolveMaxPages(0) != defaultMaxPages || resolveMaxPages(2) != 2 {
		t.Fatalf("unexpected max pages resolution")
	}
}

func TestCheckResponseRateLimit(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Body:       io.NopCloser(strings.NewReader("slow down")),
		Header:     http.Header{"Retry-After": []string{"7"}},
	}
	err := checkResponse(resp)
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second || rl.Provider != providerName {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 0 {
		t.Fatalf("expected 0 for empty header, got %s", got)
	}
	if got := parseRetryAfter("junk"); got != 0 {
		t.Fatalf("expected 0 for junk header, got %s", got)
	}
	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 {
		t.Fatalf("expected positive delay for http date, got %s", got)
	}
}
