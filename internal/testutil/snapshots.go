package testutil

import (
	"testing"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a one-fixture board for the league and date.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, leagueKey int, date string) {
	t.Helper()
	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("invalid date %s: %v", date, err)
	}
	if err := w.WriteBoardSnapshot(SampleBoard(leagueKey, date, start.Add(15*time.Hour))); err != nil {
		t.Fatalf("failed to write snapshot %d/%s: %v", leagueKey, date, err)
	}
}

// SnapshotPath returns the expected file path for a board snapshot.
func SnapshotPath(w *snapshots.Writer, leagueKey int, date string) string {
	return snapshots.BoardSnapshotPath(w.BasePath(), leagueKey, date)
}
