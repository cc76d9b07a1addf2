package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
)

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	w := newTestWriter(t, 10)
	writeSimpleSnapshot(t, w, 1, "2024-01-10")

	requireSnapshotExists(t, w, 1, "2024-01-10")

	m, err := ReadManifest(w.BasePath())
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	assertDatesEqual(t, m.Boards["1"].Dates, []string{"2024-01-10"})
	if !m.Boards["1"].LastRefreshed.Equal(testNow) {
		t.Fatalf("expected last refreshed stamped, got %s", m.Boards["1"].LastRefreshed)
	}
}

func TestWriterSortsMatchesByKickoff(t *testing.T) {
	w := newTestWriter(t, 10)
	late := matches.Match{ID: "b", StartTime: testNow.Add(2 * time.Hour)}
	early := matches.Match{ID: "a", StartTime: testNow}
	snap := domainboard.NewSnapshot(1, "2024-01-10", []matches.Match{late, early}, nil, testNow)
	if err := w.WriteBoardSnapshot(snap); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(BoardSnapshotPath(w.BasePath(), 1, "2024-01-10"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got domainboard.Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Matches[0].ID != "a" || got.Matches[1].ID != "b" {
		t.Fatalf("expected kickoff order, got %+v", got.Matches)
	}
}

func TestWriterPrunesOldSnapshotsPerLeague(t *testing.T) {
	w := newTestWriter(t, 1)

	writeSimpleSnapshot(t, w, 1, "2024-01-05")
	writeSimpleSnapshot(t, w, 2, "2024-01-05")
	writeSimpleSnapshot(t, w, 1, "2024-01-10")

	requireSnapshotMissing(t, w, 1, "2024-01-05")
	requireSnapshotExists(t, w, 1, "2024-01-10")

	m, _ := ReadManifest(w.BasePath())
	assertDatesEqual(t, m.Boards["1"].Dates, []string{"2024-01-10"})

	removed, err := w.Prune()
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected nothing left to prune, got %d", removed)
	}
}

func TestWriterPruneSweepsEveryLeague(t *testing.T) {
	w := newTestWriter(t, 3)
	writeSimpleSnapshot(t, w, 1, "2024-01-08")
	writeSimpleSnapshot(t, w, 2, "2024-01-09")

	w.now = func() time.Time { return testNow.AddDate(0, 0, 10) }
	removed, err := w.Prune()
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	requireSnapshotMissing(t, w, 1, "2024-01-08")
	requireSnapshotMissing(t, w, 2, "2024-01-09")
}

func TestWriterSkipsUnchangedContent(t *testing.T) {
	w := newTestWriter(t, 10)
	writeSimpleSnapshot(t, w, 1, "2024-01-10")
	path := BoardSnapshotPath(w.BasePath(), 1, "2024-01-10")
	before, _ := os.Stat(path)

	time.Sleep(10 * time.Millisecond)
	writeSimpleSnapshot(t, w, 1, "2024-01-10")
	after, _ := os.Stat(path)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatalf("expected unchanged snapshot not rewritten")
	}
}

func TestWriterDefaultsAndErrors(t *testing.T) {
	if NewWriter("x", 0).retentionDays != 14 {
		t.Fatalf("expected default retention")
	}
	var nilWriter *Writer
	if err := nilWriter.WriteBoardSnapshot(simpleSnapshot(1, "2024-01-10")); err == nil {
		t.Fatalf("expected nil writer error")
	}
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
	w := newTestWriter(t, 10)
	if err := w.WriteBoardSnapshot(domainboard.Snapshot{LeagueKey: 1}); err == nil {
		t.Fatalf("expected error for missing date")
	}
}

func TestWriterIgnoresNonJSONFiles(t *testing.T) {
	w := newTestWriter(t, 10)
	writeSimpleSnapshot(t, w, 1, "2024-01-10")
	if err := os.WriteFile(filepath.Join(leagueDir(w.BasePath(), 1), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dates, err := w.listDates(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	assertDatesEqual(t, dates, []string{"2024-01-10"})
}
