package store

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
)

// ErrNotFound is returned by lookups that miss.
var ErrNotFound = errors.New("store: not found")

// SlipStore persists one working slip per user.
type SlipStore interface {
	GetSlip(ctx context.Context, userID string) (slips.Slip, error)
	SaveSlip(ctx context.Context, slip slips.Slip) error
	DeleteSlip(ctx context.Context, userID string) error
}

// PoolStore persists submitted pools.
type PoolStore interface {
	SavePool(ctx context.Context, pool slips.Pool) error
	GetPool(ctx context.Context, id string) (slips.Pool, error)
	DeletePool(ctx context.Context, id string) error
}

// MemorySlipStore keeps slips in process memory.
type MemorySlipStore struct {
	mu    sync.RWMutex
	slips map[string]slips.Slip
}

// NewMemorySlipStore constructs an empty MemorySlipStore.
func NewMemorySlipStore() *MemorySlipStore {
	return &MemorySlipStore{slips: make(map[string]slips.Slip)}
}

// GetSlip returns the user's slip or ErrNotFound.
func (s *MemorySlipStore) GetSlip(ctx context.Context, userID string) (slips.Slip, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	slip, ok := s.slips[userID]
	if !ok {
		return slips.Slip{}, ErrNotFound
	}
	return copySlip(slip), nil
}

// SaveSlip stores the slip under its user.
func (s *MemorySlipStore) SaveSlip(ctx context.Context, slip slips.Slip) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slips[slip.UserID] = copySlip(slip)
	return nil
}

// DeleteSlip removes the user's slip. Deleting a missing slip is not an error.
func (s *MemorySlipStore) DeleteSlip(ctx context.Context, userID string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slips, userID)
	return nil
}

// MemoryPoolStore keeps pools in process memory.
type MemoryPoolStore struct {
	mu    sync.RWMutex
	pools map[string]slips.Pool
}

// NewMemoryPoolStore constructs an empty MemoryPoolStore.
func NewMemoryPoolStore() *MemoryPoolStore {
	return &MemoryPoolStore{pools: make(map[string]slips.Pool)}
}

// SavePool inserts or replaces the pool.
func (s *MemoryPoolStore) SavePool(ctx context.Context, pool slips.Pool) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	pool.Selections = cloneSelections(pool.Selections)
	s.pools[pool.ID] = pool
	return nil
}

// GetPool returns the pool or ErrNotFound.
func (s *MemoryPoolStore) GetPool(ctx context.Context, id string) (slips.Pool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, ok := s.pools[id]
	if !ok {
		return slips.Pool{}, ErrNotFound
	}
	pool.Selections = cloneSelections(pool.Selections)
	return pool, nil
}

// DeletePool removes the pool. Deleting a missing pool is not an error.
func (s *MemoryPoolStore) DeletePool(ctx context.Context, id string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pools, id)
	return nil
}

func copySlip(slip slips.Slip) slips.Slip {
	out := slip
	out.Selections = cloneSelections(slip.Selections)
	if slip.EnteredAt != nil {
		at := *slip.EnteredAt
		out.EnteredAt = &at
	}
	return out
}

func cloneSelections(list []slips.Selection) []slips.Selection {
	return append(make([]slips.Selection, 0, len(list)), list...)
}
