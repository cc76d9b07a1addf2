package testutil

import (
	"testing"
	"time"

	appboard "github.com/preston-bernstein/football-slip-service/internal/app/board"
	appslips "github.com/preston-bernstein/football-slip-service/internal/app/slips"
	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/store"
)

// Services bundles the board and slip services over in-memory stores.
type Services struct {
	Boards *appboard.Service
	Slips  *appslips.Service
	Board  *store.MemoryStore
	Store  *store.MemorySlipStore
	Pools  *store.MemoryPoolStore
}

// TwoLeagues returns a registry with keys 1 and 2.
func TwoLeagues(t *testing.T) *leagues.Registry {
	t.Helper()
	reg, err := leagues.New([]leagues.League{
		{Key: 1, Name: "Premier League", SeasonID: "sr:season:1", CompetitionID: "sr:competition:17"},
		{Key: 2, Name: "LaLiga", SeasonID: "sr:season:2", CompetitionID: "sr:competition:8"},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

// NewServices builds services with a fixed clock, preloaded with boards. Prices use book 0.
func NewServices(t *testing.T, now time.Time, boards ...domainboard.Snapshot) Services {
	t.Helper()
	ms := store.NewMemoryStore()
	for _, b := range boards {
		ms.SetBoard(b)
	}
	boardSvc := appboard.NewService(ms, nil, TwoLeagues(t), appboard.Config{BookIndex: 0, Now: NowAt(now)})
	slipStore := store.NewMemorySlipStore()
	poolStore := store.NewMemoryPoolStore()
	slipSvc := appslips.NewService(slipStore, poolStore, boardSvc, appslips.Config{Now: NowAt(now)})
	return Services{
		Boards: boardSvc,
		Slips:  slipSvc,
		Board:  ms,
		Store:  slipStore,
		Pools:  poolStore,
	}
}
