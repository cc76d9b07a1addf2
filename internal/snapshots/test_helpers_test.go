package snapshots

import (
	"os"
	"testing"
	"time"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
)

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestWriter(t *testing.T, retentionDays int) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retentionDays)
	w.now = func() time.Time { return testNow }
	return w
}

func simpleSnapshot(leagueKey int, date string) domainboard.Snapshot {
	return domainboard.NewSnapshot(leagueKey, date, []matches.Match{
		{ID: date + "-1", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
	}, nil, testNow)
}

func writeSimpleSnapshot(t *testing.T, w *Writer, leagueKey int, date string) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteBoardSnapshot(simpleSnapshot(leagueKey, date)); err != nil {
		t.Fatalf("failed to write snapshot %d/%s: %v", leagueKey, date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, leagueKey int, date string) {
	t.Helper()
	if _, err := os.Stat(BoardSnapshotPath(w.BasePath(), leagueKey, date)); err != nil {
		t.Fatalf("expected snapshot for %d/%s to be written: %v", leagueKey, date, err)
	}
}

func requireSnapshotMissing(t *testing.T, w *Writer, leagueKey int, date string) {
	t.Helper()
	if _, err := os.Stat(BoardSnapshotPath(w.BasePath(), leagueKey, date)); err == nil {
		t.Fatalf("expected snapshot for %d/%s to be absent", leagueKey, date)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
