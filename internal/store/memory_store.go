package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/football-slip-service/internal/domain/board"
)

// MemoryStore keeps a thread-safe set of board snapshots in memory, keyed by league and date.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]board.Snapshot
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards: make(map[string]board.Snapshot),
	}
}

// GetBoard retrieves the snapshot for a league and date.
func (s *MemoryStore) GetBoard(leagueKey int, date string) (board.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.boards[board.Key(leagueKey, date)]
	if !ok {
		return board.Snapshot{}, false
	}
	return copySnapshot(snap), true
}

// SetBoard replaces the snapshot for the snapshot's league and date.
func (s *MemoryStore) SetBoard(snap board.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards[snap.Key()] = copySnapshot(snap)
}

// ListBoards returns copies of every stored snapshot ordered by league then date.
func (s *MemoryStore) ListBoards() []board.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]board.Snapshot, 0, len(s.boards))
	for _, snap := range s.boards {
		result = append(result, copySnapshot(snap))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LeagueKey != result[j].LeagueKey {
			return result[i].LeagueKey < result[j].LeagueKey
		}
		return result[i].Date < result[j].Date
	})
	return result
}

// Prune drops snapshots whose date is before the given YYYY-MM-DD date.
func (s *MemoryStore) Prune(before string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, snap := range s.boards {
		if snap.Date < before {
			delete(s.boards, key)
			removed++
		}
	}
	return removed
}

func copySnapshot(snap board.Snapshot) board.Snapshot {
	out := snap
	out.Matches = append(out.Matches[:0:0], snap.Matches...)
	out.Quotes = append(out.Quotes[:0:0], snap.Quotes...)
	return out
}
