// Package display derives the strings shown in the match table. Everything here is pure.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
)

// Placeholder is shown where no value is available.
const Placeholder = "-"

const (
	dateLayout = "02/01/06"
	timeLayout = "15:04"
)

// Clock is the status column of a match row.
type Clock struct {
	Text   string `json:"text"`
	Date   string `json:"date,omitempty"`
	Time   string `json:"time,omitempty"`
	Played string `json:"played,omitempty"`
	Period string `json:"period,omitempty"`
}

// ClockLabel returns FT for ended matches, elapsed time and half for live ones, and the
// kickoff date and 24-hour time in loc otherwise.
func ClockLabel(m matches.Match, loc *time.Location) Clock {
	if m.Ended() {
		return Clock{Text: "FT"}
	}
	if m.Live() {
		period := periodLabel(m.Period)
		return Clock{
			Text:   strings.TrimSpace(m.Played + " " + period),
			Played: m.Played,
			Period: period,
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	if m.StartTime.IsZero() {
		return Clock{Text: Placeholder}
	}
	start := m.StartTime.In(loc)
	date := start.Format(dateLayout)
	clock := fmt.Sprintf("%02d:%02d", start.Hour(), start.Minute())
	return Clock{
		Text: date + " " + clock,
		Date: date,
		Time: clock,
	}
}

func periodLabel(p matches.Period) string {
	switch p {
	case matches.PeriodFirstHalf:
		return "1st"
	case matches.PeriodHalftime:
		return "HT"
	default:
		return "2nd"
	}
}

// ScoreLine is the score column of a match row.
type ScoreLine struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// ScoreLabel returns placeholders before kickoff and the numeric score afterwards.
func ScoreLabel(m matches.Match) ScoreLine {
	if m.NotStarted() {
		return ScoreLine{Home: Placeholder, Away: Placeholder}
	}
	return ScoreLine{
		Home: strconv.Itoa(m.Score.Home),
		Away: strconv.Itoa(m.Score.Away),
	}
}

// OddsLabel returns the price for one outcome cell with two decimals. Ended matches,
// unknown fixtures and missing or malformed prices show the placeholder.
func OddsLabel(m matches.Match, quotes []odds.Quote, book, outcome int) string {
	if m.Ended() {
		return Placeholder
	}
	quote, ok := odds.Find(quotes, m.HomeTeam, m.AwayTeam)
	if !ok {
		return Placeholder
	}
	price, ok := quote.Price(book, outcome)
	if !ok {
		return Placeholder
	}
	return price.StringFixed(2)
}
