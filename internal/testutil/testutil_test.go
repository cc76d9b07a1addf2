package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	domainslips "github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/providers"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	start := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	board := SampleBoard(1, "2024-01-02", start)
	if board.Key() != "1/2024-01-02" || len(board.Matches) != 1 || !board.OddsAvailable() {
		t.Fatalf("unexpected board fixture %+v", board)
	}
	price, ok := board.Quotes[0].Price(0, 1)
	if !ok || price.StringFixed(2) != "3.40" {
		t.Fatalf("expected draw price 3.40, got %v", price)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true,"user":"` + r.Header.Get("X-User-ID") + `"}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]any
	DecodeJSON(t, rr, &body)
	if body["ok"] != true {
		t.Fatalf("expected ok=true")
	}

	rr = ServeAs(handler, "u1", http.MethodGet, "/as", nil)
	DecodeJSON(t, rr, &body)
	if body["user"] != "u1" {
		t.Fatalf("expected user header forwarded, got %v", body["user"])
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestSnapshotHelpers(t *testing.T) {
	w := NewTempWriter(t, 5)
	date := time.Now().UTC().Format(time.DateOnly)
	WriteSnapshot(t, w, 1, date)
	data, err := os.ReadFile(SnapshotPath(w, 1, date))
	if err != nil {
		t.Fatalf("expected snapshot file, got %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected snapshot contents")
	}
}

func TestServicesHelper(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	svc := NewServices(t, now, SampleBoard(1, "2024-01-02", now.Add(6*time.Hour)))
	view, err := svc.Boards.View(0, "", domainslips.NewSlip(""))
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.League.Key != 1 || view.Date != "2024-01-02" || len(view.Rows) != 1 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop")}
	p.Start(context.Background())
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen failure")
	}

	c := &CloseableHTTPServer{}
	if err := c.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected server closed")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()
	league := leagues.League{Key: 1, SeasonID: "s1"}
	list := []matches.Match{{ID: "m1"}}

	p := GoodProvider{Matches: list}
	if got, _ := p.FetchMatches(ctx, league, ""); len(got) != 1 {
		t.Fatalf("expected matches from GoodProvider")
	}

	errProv := ErrProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchOdds(ctx, league, ""); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}

	unavail := UnavailableProvider{}
	if _, err := unavail.FetchMatches(ctx, league, ""); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}

	notify := &NotifyingProvider{Matches: list, Notify: make(chan struct{})}
	if _, err := notify.FetchMatches(ctx, league, ""); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	select {
	case <-notify.Notify:
	default:
		t.Fatalf("expected notify channel to close")
	}
}
