package testutil

import (
	"time"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
)

// SampleMatch returns a not-started fixture kicking off at start.
func SampleMatch(id, home, away string, start time.Time) matches.Match {
	return matches.Match{
		ID:        id,
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: start,
		Status:    matches.StatusNotStarted,
	}
}

// SampleQuote returns a single-book three-way quote priced home, draw, away.
func SampleQuote(home, away, h, d, a string) odds.Quote {
	return odds.Quote{
		HomeTeam: home,
		AwayTeam: away,
		Markets: []odds.Market{{
			Name: "3way",
			Books: []odds.Book{
				{Outcomes: []odds.Outcome{{Odds: h}, {Odds: d}, {Odds: a}}},
			},
		}},
	}
}

// SampleBoard builds a board with one priced Arsenal v Chelsea fixture kicking off at start.
func SampleBoard(leagueKey int, date string, start time.Time) domainboard.Snapshot {
	return domainboard.NewSnapshot(leagueKey, date,
		[]matches.Match{SampleMatch("sr:match:1", "Arsenal", "Chelsea", start)},
		[]odds.Quote{SampleQuote("Arsenal", "Chelsea", "2.10", "3.40", "4.75")},
		start.Add(-time.Hour),
	)
}
