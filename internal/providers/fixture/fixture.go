package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/timeutil"
)

const providerName = "fixture"

// bookCount matches the number of books the upstream odds feed usually carries.
const bookCount = 5

var kickoffs = []time.Duration{
	12*time.Hour + 30*time.Minute,
	15 * time.Hour,
	17*time.Hour + 30*time.Minute,
	20 * time.Hour,
}

var fixtures = map[int][][2]string{
	1: {{"Arsenal", "Chelsea"}, {"Liverpool", "Everton"}, {"Newcastle", "Aston Villa"}, {"Brighton", "Fulham"}},
	2: {{"Real Madrid", "Sevilla"}, {"Barcelona", "Valencia"}, {"Atletico Madrid", "Getafe"}, {"Real Sociedad", "Villarreal"}},
	3: {{"Inter", "Roma"}, {"Milan", "Lazio"}, {"Juventus", "Napoli"}, {"Atalanta", "Fiorentina"}},
	4: {{"Bayern Munich", "Freiburg"}, {"Dortmund", "Leipzig"}, {"Leverkusen", "Stuttgart"}, {"Wolfsburg", "Mainz"}},
	5: {{"PSG", "Lyon"}, {"Marseille", "Nice"}, {"Monaco", "Lille"}, {"Rennes", "Lens"}},
}

var fallback = [][2]string{{"Home United", "Away City"}, {"North Rovers", "South Athletic"}}

// Provider returns a deterministic board useful for local testing and bootstrapping.
// Match status follows the wall clock so live and ended rows appear during the day.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchMatches returns the fixtures for the league on date (UTC). An empty or invalid date means today.
func (p *Provider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	_ = ctx

	day := p.day(date)
	now := p.now()
	pairs := pairsFor(league.Key)

	out := make([]matches.Match, 0, len(pairs))
	for i, pair := range pairs {
		start := day.Add(kickoffs[i%len(kickoffs)])
		m := matches.Match{
			ID:        fmt.Sprintf("%s-%d-%s-%d", providerName, league.Key, timeutil.FormatDate(day), i+1),
			Provider:  providerName,
			HomeTeam:  pair[0],
			AwayTeam:  pair[1],
			StartTime: start,
			LeagueKey: league.SeasonID,
		}
		progress(&m, now.Sub(start), i)
		out = append(out, m)
	}
	return out, nil
}

// FetchOdds returns a three-way market with bookCount books for every fixture on date.
func (p *Provider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	_ = ctx

	day := p.day(date)
	pairs := pairsFor(league.Key)

	out := make([]odds.Quote, 0, len(pairs))
	for i, pair := range pairs {
		books := make([]odds.Book, 0, bookCount)
		for b := 0; b < bookCount; b++ {
			books = append(books, odds.Book{
				ID:       fmt.Sprintf("sr:book:%d", b+1),
				Name:     fmt.Sprintf("Book %d", b+1),
				Outcomes: prices(i, b),
			})
		}
		out = append(out, odds.Quote{
			EventID:  fmt.Sprintf("%s-%d-%s-%d", providerName, league.Key, timeutil.FormatDate(day), i+1),
			HomeTeam: pair[0],
			AwayTeam: pair[1],
			Markets:  []odds.Market{{Name: "3way", Books: books}},
		})
	}
	return out, nil
}

func (p *Provider) day(date string) time.Time {
	if parsed, err := timeutil.ParseDate(date); err == nil {
		return parsed.UTC()
	}
	return timeutil.StartOfDay(p.now().UTC())
}

func pairsFor(key int) [][2]string {
	if pairs, ok := fixtures[key]; ok {
		return pairs
	}
	return fallback
}

// progress derives status, period, clock and score from the time since kickoff.
func progress(m *matches.Match, elapsed time.Duration, seed int) {
	switch {
	case elapsed < 0:
		m.Status = matches.StatusNotStarted
		return
	case elapsed >= 115*time.Minute:
		m.Status = matches.StatusEnded
		m.Period = matches.PeriodEnded
	case elapsed < 45*time.Minute:
		m.Status = matches.StatusLive
		m.Period = matches.PeriodFirstHalf
		m.Played = played(elapsed)
	case elapsed < 60*time.Minute:
		m.Status = matches.StatusLive
		m.Period = matches.PeriodHalftime
		m.Played = "45:00"
	default:
		m.Status = matches.StatusLive
		m.Period = matches.PeriodSecondHalf
		m.Played = played(elapsed - 15*time.Minute)
	}
	minutes := int(elapsed / time.Minute)
	m.Score = matches.Score{
		Home: (minutes / 30) % (seed + 2),
		Away: (minutes / 40) % (seed%2 + 2),
	}
}

func played(d time.Duration) string {
	if d > 90*time.Minute {
		d = 90 * time.Minute
	}
	return fmt.Sprintf("%d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}

// prices spreads a home/draw/away triple per fixture and nudges it per book.
func prices(fixture, book int) []odds.Outcome {
	home := decimal.NewFromFloat(1.6).Add(decimal.NewFromFloat(0.35).Mul(decimal.NewFromInt(int64(fixture))))
	draw := decimal.NewFromFloat(3.2).Add(decimal.NewFromFloat(0.1).Mul(decimal.NewFromInt(int64(fixture))))
	away := decimal.NewFromFloat(4.5).Sub(decimal.NewFromFloat(0.4).Mul(decimal.NewFromInt(int64(fixture))))
	nudge := decimal.NewFromFloat(0.05).Mul(decimal.NewFromInt(int64(book)))
	return []odds.Outcome{
		{Type: "1", Odds: home.Add(nudge).StringFixed(2)},
		{Type: "x", Odds: draw.Add(nudge).StringFixed(2)},
		{Type: "2", Odds: away.Add(nudge).StringFixed(2)},
	}
}
