package sportradar

import (
	"strings"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
)

func mapSummary(s summaryResponse, leagueKey string) matches.Match {
	home, away := splitCompetitors(s.SportEvent.Competitors)
	m := matches.Match{
		ID:        s.SportEvent.ID,
		Provider:  providerName,
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: parseStart(s.SportEvent.StartTime),
		Status:    matches.ParseStatus(s.SportEventStatus.Status),
		Period:    matches.ParsePeriod(s.SportEventStatus.MatchStatus),
		Score: matches.Score{
			Home: s.SportEventStatus.HomeScore,
			Away: s.SportEventStatus.AwayScore,
		},
		LeagueKey: leagueKey,
	}
	if s.SportEventStatus.Clock != nil {
		m.Played = strings.TrimSpace(s.SportEventStatus.Clock.Played)
	}
	return m
}

func mapOddsEvent(e oddsEventResponse) odds.Quote {
	home, away := splitCompetitors(e.Competitors)
	markets := make([]odds.Market, 0, len(e.Markets))
	for _, mk := range e.Markets {
		books := make([]odds.Book, 0, len(mk.Books))
		for _, b := range mk.Books {
			outcomes := make([]odds.Outcome, 0, len(b.Outcomes))
			for _, o := range b.Outcomes {
				outcomes = append(outcomes, odds.Outcome{Type: o.Type, Odds: o.Odds})
			}
			books = append(books, odds.Book{ID: b.ID, Name: b.Name, Outcomes: outcomes})
		}
		markets = append(markets, odds.Market{Name: mk.Name, Books: books})
	}
	return odds.Quote{
		EventID:  e.ID,
		HomeTeam: home,
		AwayTeam: away,
		Markets:  markets,
	}
}

// splitCompetitors prefers the home/away qualifiers and falls back to list order.
func splitCompetitors(list []competitorResponse) (home, away string) {
	for _, c := range list {
		switch strings.ToLower(c.Qualifier) {
		case "home":
			home = c.Name
		case "away":
			away = c.Name
		}
	}
	if home == "" && len(list) > 0 {
		home = list[0].Name
	}
	if away == "" && len(list) > 1 {
		away = list[1].Name
	}
	return home, away
}

func parseStart(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t
}
