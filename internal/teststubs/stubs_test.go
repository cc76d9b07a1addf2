package teststubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Matches: []matches.Match{{ID: "m1"}}, Err: err}
	if _, got := p.FetchMatches(context.Background(), leagues.League{Key: 1}, "2024-01-01"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if _, got := p.FetchOdds(context.Background(), leagues.League{Key: 1}, "2024-01-01"); got != nil {
		t.Fatalf("expected no odds error, got %v", got)
	}
	if p.Calls.Load() != 1 || p.OddsCall.Load() != 1 {
		t.Fatalf("expected one call each, got %d/%d", p.Calls.Load(), p.OddsCall.Load())
	}
}

func TestStubSnapshotStore(t *testing.T) {
	snap := board.NewSnapshot(1, "2024-01-01", []matches.Match{{ID: "m1"}}, nil, time.Time{})
	s := &StubSnapshotStore{Boards: map[string]board.Snapshot{snap.Key(): snap}}

	got, err := s.LoadBoard(1, "2024-01-01")
	if err != nil || len(got.Matches) != 1 {
		t.Fatalf("expected loaded board, got %+v err %v", got, err)
	}
	if _, err := s.LoadBoard(2, "2024-01-01"); err == nil {
		t.Fatalf("expected missing board error")
	}
}

func TestStubSnapshotWriter(t *testing.T) {
	w := &StubSnapshotWriter{}
	if err := w.WriteBoardSnapshot(board.NewSnapshot(1, "2024-01-01", nil, nil, time.Time{})); err != nil {
		t.Fatalf("expected write success, got %v", err)
	}
	if w.Count() != 1 {
		t.Fatalf("expected one written entry, got %d", w.Count())
	}

	w.Err = errors.New("write error")
	if err := w.WriteBoardSnapshot(board.Snapshot{}); err == nil {
		t.Fatalf("expected configured error")
	}
}

func TestStubNotifierAndPublisher(t *testing.T) {
	n := &StubNotifier{}
	n.Notify("u1", *slips.ErrEmptySlip)
	if got := n.For("u1"); len(got) != 1 || got[0].Code != slips.ErrEmptySlip.Code {
		t.Fatalf("unexpected notices %+v", got)
	}

	p := &StubPublisher{}
	if err := p.PublishPoolEntered(context.Background(), slips.Pool{ID: "p1"}); err != nil || p.Count() != 1 {
		t.Fatalf("expected published pool, err %v", err)
	}
}
