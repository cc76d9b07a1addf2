package board

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
)

// Snapshot is everything fetched for one league on one date.
type Snapshot struct {
	LeagueKey int             `json:"leagueKey"`
	Date      string          `json:"date"`
	Matches   []matches.Match `json:"matches"`
	Quotes    []odds.Quote    `json:"quotes"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// NewSnapshot builds a snapshot, normalizing nil slices so the JSON shape is stable.
func NewSnapshot(leagueKey int, date string, list []matches.Match, quotes []odds.Quote, fetchedAt time.Time) Snapshot {
	if list == nil {
		list = []matches.Match{}
	}
	if quotes == nil {
		quotes = []odds.Quote{}
	}
	return Snapshot{
		LeagueKey: leagueKey,
		Date:      date,
		Matches:   list,
		Quotes:    quotes,
		FetchedAt: fetchedAt,
	}
}

// Key identifies a snapshot by league and date.
func Key(leagueKey int, date string) string {
	return fmt.Sprintf("%d/%s", leagueKey, date)
}

// Key returns the snapshot's own league/date key.
func (s Snapshot) Key() string {
	return Key(s.LeagueKey, s.Date)
}

// OddsAvailable reports whether any quote was delivered.
func (s Snapshot) OddsAvailable() bool {
	return len(s.Quotes) > 0
}
