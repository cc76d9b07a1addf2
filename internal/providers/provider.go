package providers

import (
	"context"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
)

// MatchProvider fetches normalized matches for one league on a YYYY-MM-DD date.
// Providers interpret the date in their configured timezone.
type MatchProvider interface {
	FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error)
}

// OddsProvider fetches pre-match quotes for one league on a YYYY-MM-DD date.
type OddsProvider interface {
	FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error)
}

// BoardProvider combines everything the board needs from upstream.
type BoardProvider interface {
	MatchProvider
	OddsProvider
}
