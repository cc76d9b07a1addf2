package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
)

// StubProvider is a test double for providers.BoardProvider.
type StubProvider struct {
	Matches  []matches.Match
	Quotes   []odds.Quote
	Err      error
	OddsErr  error
	Calls    atomic.Int32
	OddsCall atomic.Int32
	Notify   chan struct{}
}

// FetchMatches returns configured matches and error while tracking calls.
func (s *StubProvider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	_ = ctx
	_ = league
	_ = date
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Matches, s.Err
}

// FetchOdds returns configured quotes and error while tracking calls.
func (s *StubProvider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	_ = ctx
	_ = league
	_ = date
	s.OddsCall.Add(1)
	return s.Quotes, s.OddsErr
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Boards  map[string]board.Snapshot // keyed by board.Key
	LoadErr error
}

// LoadBoard returns the snapshot for the league/date if present.
func (s *StubSnapshotStore) LoadBoard(leagueKey int, date string) (board.Snapshot, error) {
	if s.LoadErr != nil {
		return board.Snapshot{}, s.LoadErr
	}
	snap, ok := s.Boards[board.Key(leagueKey, date)]
	if !ok {
		return board.Snapshot{}, errors.New("snapshot not found")
	}
	return snap, nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]board.Snapshot // keyed by board.Key
	Err     error
}

// WriteBoardSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteBoardSnapshot(snap board.Snapshot) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string]board.Snapshot)
	}
	w.Written[snap.Key()] = snap
	return nil
}

// Count returns how many snapshots were written.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}

// StubNotifier is a test double for slip notice delivery.
type StubNotifier struct {
	mu      sync.Mutex
	Notices map[string][]slips.Notice // keyed by user
}

// Notify records the notice for the user.
func (n *StubNotifier) Notify(userID string, notice slips.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Notices == nil {
		n.Notices = make(map[string][]slips.Notice)
	}
	n.Notices[userID] = append(n.Notices[userID], notice)
}

// For returns the notices delivered to a user.
func (n *StubNotifier) For(userID string) []slips.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]slips.Notice(nil), n.Notices[userID]...)
}

// StubPublisher is a test double for pool-entered event publishing.
type StubPublisher struct {
	mu        sync.Mutex
	Published []slips.Pool
	Err       error
}

// PublishPoolEntered records the pool.
func (p *StubPublisher) PublishPoolEntered(ctx context.Context, pool slips.Pool) error {
	_ = ctx
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, pool)
	return nil
}

// Count returns how many pools were published.
func (p *StubPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Published)
}
