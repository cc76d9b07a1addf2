package board

import (
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/display"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
)

// Cell is one clickable outcome price.
type Cell struct {
	Kind     slips.Kind `json:"kind"`
	Label    string     `json:"label"`
	Selected bool       `json:"selected"`
}

// Row is one match line of the table.
type Row struct {
	MatchID   string            `json:"matchId"`
	HomeTeam  string            `json:"homeTeam"`
	AwayTeam  string            `json:"awayTeam"`
	StartTime time.Time         `json:"startTime"`
	Status    matches.Status    `json:"status"`
	Ended     bool              `json:"ended"`
	Clock     display.Clock     `json:"clock"`
	Score     display.ScoreLine `json:"score"`
	Home      Cell              `json:"home"`
	Draw      Cell              `json:"draw"`
	Away      Cell              `json:"away"`
}

// Nav carries the neighbouring leagues and dates. Empty values mean no neighbour.
type Nav struct {
	PrevLeague *leagues.League `json:"prevLeague,omitempty"`
	NextLeague *leagues.League `json:"nextLeague,omitempty"`
	PrevDate   string          `json:"prevDate,omitempty"`
	NextDate   string          `json:"nextDate,omitempty"`
}

// View is the board for one league and date.
type View struct {
	League        leagues.League `json:"league"`
	Date          string         `json:"date"`
	Rows          []Row          `json:"rows"`
	OddsAvailable bool           `json:"oddsAvailable"`
	FetchedAt     time.Time      `json:"fetchedAt"`
	Nav           Nav            `json:"nav"`
}
