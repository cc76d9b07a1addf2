package matches

import (
	"strings"
	"time"
)

// Status mirrors the upstream sport event lifecycle.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusLive       Status = "live"
	StatusEnded      Status = "ended"
)

// Period is the phase of a live match.
type Period string

const (
	PeriodFirstHalf  Period = "1st_half"
	PeriodHalftime   Period = "halftime"
	PeriodSecondHalf Period = "2nd_half"
	PeriodEnded      Period = "ended"
)

// Score captures home and away goals.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Match is the canonical football match shape exposed by the service.
type Match struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	StartTime time.Time `json:"startTime"`
	Status    Status    `json:"status"`
	Period    Period    `json:"period,omitempty"`
	Played    string    `json:"played,omitempty"`
	Score     Score     `json:"score"`
	LeagueKey string    `json:"leagueKey"`
}

// Ended reports whether the match is over. Either the status or the period can carry it.
func (m Match) Ended() bool {
	return m.Status == StatusEnded || m.Period == PeriodEnded
}

// Live reports whether the match is in play.
func (m Match) Live() bool {
	return !m.Ended() && m.Status == StatusLive
}

// NotStarted reports whether kickoff is still ahead.
func (m Match) NotStarted() bool {
	return !m.Ended() && !m.Live()
}

// Is reports whether the match is played between the given home and away teams.
func (m Match) Is(home, away string) bool {
	return m.HomeTeam == home && m.AwayTeam == away
}

// Find returns the first match between home and away.
func Find(list []Match, home, away string) (Match, bool) {
	for _, m := range list {
		if m.Is(home, away) {
			return m, true
		}
	}
	return Match{}, false
}

// ParseStatus maps upstream status strings onto Status. Unknown values are treated as not started.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "live", "inprogress", "in_progress":
		return StatusLive
	case "ended", "closed", "complete", "completed":
		return StatusEnded
	default:
		return StatusNotStarted
	}
}

// ParsePeriod maps upstream match_status strings onto Period.
func ParsePeriod(raw string) Period {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1st_half":
		return PeriodFirstHalf
	case "halftime":
		return PeriodHalftime
	case "2nd_half":
		return PeriodSecondHalf
	case "ended":
		return PeriodEnded
	default:
		return ""
	}
}
