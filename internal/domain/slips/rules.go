package slips

import (
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
)

// Action is the state transition a toggle performed.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// ToggleInput carries everything a cell click needs to be resolved.
type ToggleInput struct {
	Match     matches.Match
	Quotes    []odds.Quote
	Kind      Kind
	LeagueKey string
	BookIndex int
	Now       time.Time
}

// Toggle resolves a click on one outcome cell. Guards run in order: ended match,
// missing odds, then remove when the pick exists or add when it does not.
func Toggle(slip Slip, in ToggleInput) (Slip, Action, error) {
	if !in.Kind.Valid() {
		return slip, "", ErrInvalidKind
	}
	if in.Match.Ended() {
		return slip, "", ErrMatchEnded
	}
	if len(in.Quotes) == 0 {
		return slip, "", ErrOddsUnavailable
	}

	home, away := in.Match.HomeTeam, in.Match.AwayTeam
	if slip.Find(home, away, in.Kind) >= 0 {
		next, err := Remove(slip, home, away, in.Kind, in.Now)
		if err != nil {
			return slip, "", err
		}
		return next, ActionRemoved, nil
	}

	sel, err := NewSelection(in)
	if err != nil {
		return slip, "", err
	}
	next, err := Add(slip, sel, in.Now)
	if err != nil {
		return slip, "", err
	}
	return next, ActionAdded, nil
}

// NewSelection builds a pending selection priced from the quote matching the fixture.
func NewSelection(in ToggleInput) (Selection, error) {
	quote, ok := odds.Find(in.Quotes, in.Match.HomeTeam, in.Match.AwayTeam)
	if !ok {
		return Selection{}, ErrOddsUnavailable
	}
	raw, ok := quote.Raw(in.BookIndex, in.Kind.OutcomeIndex())
	if !ok {
		return Selection{}, ErrOddsUnavailable
	}
	return Selection{
		HomeTeam:  in.Match.HomeTeam,
		AwayTeam:  in.Match.AwayTeam,
		Selection: in.Kind,
		Odds:      raw,
		MatchDate: in.Match.StartTime,
		Outcome:   OutcomePending,
		LeagueKey: in.LeagueKey,
	}, nil
}

// Add appends a selection. A slip holds at most one pick per match, which also keeps
// (home, away, kind) unique.
func Add(slip Slip, sel Selection, now time.Time) (Slip, error) {
	if !sel.Selection.Valid() {
		return slip, ErrInvalidKind
	}
	if slip.EnteredPool() {
		return slip, ErrPoolLocked
	}
	if slip.HasMatch(sel.HomeTeam, sel.AwayTeam) {
		return slip, ErrMatchInSlip
	}
	next := slip.clone()
	if sel.Outcome == "" {
		sel.Outcome = OutcomePending
	}
	next.Selections = append(next.Selections, sel)
	next.UpdatedAt = now
	return next, nil
}

// Remove drops the selection for (home, away, kind). Removal is blocked once the entered
// pool has a match past kickoff.
func Remove(slip Slip, home, away string, kind Kind, now time.Time) (Slip, error) {
	if slip.PoolStarted(now) {
		return slip, ErrPoolLocked
	}
	idx := slip.Find(home, away, kind)
	if idx < 0 {
		return slip, ErrNotInSlip
	}
	next := slip.clone()
	next.Selections = append(next.Selections[:idx], next.Selections[idx+1:]...)
	next.UpdatedAt = now
	return next, nil
}

// CheckSubmit validates that the slip can be entered as a pool by userID.
func CheckSubmit(slip Slip, userID string) error {
	if userID == "" {
		return ErrLoginRequired
	}
	if len(slip.Selections) == 0 {
		return ErrEmptySlip
	}
	if slip.EnteredPool() {
		return ErrPoolLocked
	}
	return nil
}

// Enter marks the slip as entered into poolID and returns the pool record.
func Enter(slip Slip, poolID string, now time.Time) (Slip, Pool) {
	next := slip.clone()
	next.PoolID = poolID
	entered := now
	next.EnteredAt = &entered
	next.UpdatedAt = now

	pool := Pool{
		ID:         poolID,
		UserID:     slip.UserID,
		Selections: append([]Selection(nil), next.Selections...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return next, pool
}

// Withdraw returns an entered slip to a draft once its pool is gone.
func Withdraw(slip Slip, now time.Time) Slip {
	next := slip.clone()
	next.PoolID = ""
	next.EnteredAt = nil
	next.UpdatedAt = now
	return next
}

// CanClear reports whether the slip may be discarded: always before entry, and after
// entry once the last match has kicked off and the grace period has passed.
func CanClear(slip Slip, now time.Time, grace time.Duration) bool {
	if !slip.EnteredPool() {
		return true
	}
	last := slip.LastKickoff()
	if last.IsZero() {
		return true
	}
	return !now.Before(last.Add(grace))
}
