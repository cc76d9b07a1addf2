package odds

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Outcome indexes within a three-way market.
const (
	OutcomeHome = 0
	OutcomeDraw = 1
	OutcomeAway = 2
)

// Outcome is a single price offered by a book. Odds are kept as delivered upstream (decimal string).
type Outcome struct {
	Type string `json:"type"`
	Odds string `json:"odds"`
}

// Book is one bookmaker's prices for a market.
type Book struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name"`
	Outcomes []Outcome `json:"outcomes"`
}

// Market groups the books quoting the same bet type.
type Market struct {
	Name  string `json:"name"`
	Books []Book `json:"books"`
}

// Quote is the odds payload for one sport event, matched to a Match by competitor names.
type Quote struct {
	EventID  string   `json:"eventId,omitempty"`
	HomeTeam string   `json:"homeTeam"`
	AwayTeam string   `json:"awayTeam"`
	Markets  []Market `json:"markets"`
}

// Raw returns the upstream odds string at the given book slot and outcome index of the first market.
func (q Quote) Raw(book, outcome int) (string, bool) {
	if len(q.Markets) == 0 {
		return "", false
	}
	books := q.Markets[0].Books
	if book < 0 || book >= len(books) {
		return "", false
	}
	outcomes := books[book].Outcomes
	if outcome < 0 || outcome >= len(outcomes) {
		return "", false
	}
	raw := strings.TrimSpace(outcomes[outcome].Odds)
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Price parses the odds at the given book slot and outcome index.
func (q Quote) Price(book, outcome int) (decimal.Decimal, bool) {
	raw, ok := q.Raw(book, outcome)
	if !ok {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

// Find returns the quote whose competitors match home and away.
func Find(quotes []Quote, home, away string) (Quote, bool) {
	for _, q := range quotes {
		if q.HomeTeam == home && q.AwayTeam == away {
			return q, true
		}
	}
	return Quote{}, false
}
