package slips

import (
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
)

// Kind is the outcome a selection backs.
type Kind string

const (
	KindHome Kind = "home"
	KindDraw Kind = "draw"
	KindAway Kind = "away"
)

// Kinds lists the outcomes in cell order.
var Kinds = []Kind{KindHome, KindDraw, KindAway}

// Valid reports whether k is one of the three outcome kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindHome, KindDraw, KindAway:
		return true
	default:
		return false
	}
}

// OutcomeIndex maps the kind onto its position within a three-way market.
func (k Kind) OutcomeIndex() int {
	switch k {
	case KindDraw:
		return odds.OutcomeDraw
	case KindAway:
		return odds.OutcomeAway
	default:
		return odds.OutcomeHome
	}
}

// OutcomeStatus is the settlement state of a selection.
type OutcomeStatus string

const (
	OutcomePending OutcomeStatus = "pending"
	OutcomeWon     OutcomeStatus = "won"
	OutcomeLost    OutcomeStatus = "lost"
	OutcomeVoid    OutcomeStatus = "void"
)

// Selection is one pick in a slip.
type Selection struct {
	HomeTeam  string        `json:"homeTeam"`
	AwayTeam  string        `json:"awayTeam"`
	Selection Kind          `json:"selection"`
	Odds      string        `json:"odds"`
	MatchDate time.Time     `json:"matchDate"`
	Outcome   OutcomeStatus `json:"outcome"`
	LeagueKey string        `json:"leagueKey"`
}

// SameMatch reports whether the selection is for the given fixture.
func (s Selection) SameMatch(home, away string) bool {
	return s.HomeTeam == home && s.AwayTeam == away
}

// Slip is a user's selections plus the pool they were entered into, if any.
type Slip struct {
	UserID     string      `json:"userId"`
	Selections []Selection `json:"selections"`
	PoolID     string      `json:"poolId,omitempty"`
	EnteredAt  *time.Time  `json:"enteredAt,omitempty"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// NewSlip returns an empty slip for the user.
func NewSlip(userID string) Slip {
	return Slip{UserID: userID, Selections: []Selection{}}
}

// EnteredPool reports whether the slip has been submitted as a pool entry.
func (s Slip) EnteredPool() bool {
	return s.PoolID != ""
}

// PoolStarted reports whether an entered pool has at least one match past kickoff.
func (s Slip) PoolStarted(now time.Time) bool {
	if !s.EnteredPool() {
		return false
	}
	for _, sel := range s.Selections {
		if !sel.MatchDate.IsZero() && !now.Before(sel.MatchDate) {
			return true
		}
	}
	return false
}

// Find returns the index of the selection for (home, away, kind), or -1.
func (s Slip) Find(home, away string, kind Kind) int {
	for i, sel := range s.Selections {
		if sel.SameMatch(home, away) && sel.Selection == kind {
			return i
		}
	}
	return -1
}

// HasMatch reports whether any selection exists for the fixture.
func (s Slip) HasMatch(home, away string) bool {
	for _, sel := range s.Selections {
		if sel.SameMatch(home, away) {
			return true
		}
	}
	return false
}

// LastKickoff returns the latest match date across selections.
func (s Slip) LastKickoff() time.Time {
	var last time.Time
	for _, sel := range s.Selections {
		if sel.MatchDate.After(last) {
			last = sel.MatchDate
		}
	}
	return last
}

func (s Slip) clone() Slip {
	out := s
	out.Selections = append([]Selection(nil), s.Selections...)
	if out.Selections == nil {
		out.Selections = []Selection{}
	}
	return out
}

// Pool is a submitted slip entered into competition.
type Pool struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Selections []Selection `json:"selections"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
