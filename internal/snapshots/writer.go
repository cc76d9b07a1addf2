package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/timeutil"
)

// Writer persists snapshots and manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
	mu            sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 14
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteBoardSnapshot writes the board for its league and date and prunes old snapshots of that league.
func (w *Writer) WriteBoardSnapshot(snap domainboard.Snapshot) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if snap.Date == "" {
		return fmt.Errorf("date required")
	}
	ordered := append([]matches.Match{}, snap.Matches...)
	snap = domainboard.NewSnapshot(snap.LeagueKey, snap.Date, ordered, snap.Quotes, snap.FetchedAt)
	sort.SliceStable(snap.Matches, func(i, j int) bool {
		if !snap.Matches[i].StartTime.Equal(snap.Matches[j].StartTime) {
			return snap.Matches[i].StartTime.Before(snap.Matches[j].StartTime)
		}
		return snap.Matches[i].ID < snap.Matches[j].ID
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	target := BoardSnapshotPath(w.basePath, snap.LeagueKey, snap.Date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(snap.LeagueKey, snap.Date)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.updateManifest(snap.LeagueKey, snap.Date)
}

func (w *Writer) updateManifest(leagueKey int, date string) error {
	manifestPath := filepath.Join(w.basePath, "manifest.json")
	m, _ := readManifest(manifestPath, w.retentionDays)

	dates, err := w.listDates(leagueKey)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	pruned := w.pruneOldSnapshots(leagueKey, dates)

	m.Boards[strconv.Itoa(leagueKey)] = BoardsMeta{
		Dates:         pruned,
		LastRefreshed: w.now().UTC(),
	}
	m.Retention.BoardDays = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates(leagueKey int) ([]string, error) {
	entries, err := os.ReadDir(leagueDir(w.basePath, leagueKey))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var (
		dates []string
		seen  = make(map[string]struct{})
	)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		base := name[:len(name)-len(".json")]
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		dates = append(dates, base)
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(leagueKey int, dates []string) []string {
	now := w.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := []string{}
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(BoardSnapshotPath(w.basePath, leagueKey, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}

// Prune removes snapshots outside the retention window for every league in the manifest.
func (w *Writer) Prune() (int, error) {
	if w == nil {
		return 0, fmt.Errorf("snapshot writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	manifestPath := filepath.Join(w.basePath, "manifest.json")
	m, err := readManifest(manifestPath, w.retentionDays)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for key, meta := range m.Boards {
		leagueKey, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		dates, err := w.listDates(leagueKey)
		if err != nil {
			return removed, err
		}
		kept := w.pruneOldSnapshots(leagueKey, dates)
		removed += len(dates) - len(kept)
		meta.Dates = kept
		m.Boards[key] = meta
	}
	return removed, writeManifest(w.basePath, m)
}
