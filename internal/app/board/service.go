package board

import (
	"errors"
	"time"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/display"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/timeutil"
)

var (
	ErrUnknownLeague = errors.New("unknown league")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD and not before today")
	ErrNotLoaded     = errors.New("board not loaded yet")
)

// Store defines the contract for persisting and retrieving board snapshots.
type Store interface {
	GetBoard(leagueKey int, date string) (domainboard.Snapshot, bool)
	SetBoard(snap domainboard.Snapshot)
}

// SnapshotLoader reads persisted boards when the store has none.
type SnapshotLoader interface {
	LoadBoard(leagueKey int, date string) (domainboard.Snapshot, error)
}

// Config controls how the board is rendered.
type Config struct {
	BookIndex int
	Location  *time.Location
	Days      int
	Now       func() time.Time
}

// Service coordinates board reads using a Store, falling back to snapshots.
type Service struct {
	store     Store
	snapshots SnapshotLoader
	leagues   *leagues.Registry
	cfg       Config
	now       func() time.Time
}

// NewService constructs a Service. snapshots may be nil.
func NewService(store Store, snapshots SnapshotLoader, reg *leagues.Registry, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		store:     store,
		snapshots: snapshots,
		leagues:   reg,
		cfg:       cfg,
		now:       cfg.Now,
	}
}

// Leagues returns the selectable leagues in key order.
func (s *Service) Leagues() []leagues.League {
	return s.leagues.All()
}

// Days returns the date tabs starting today.
func (s *Service) Days() []timeutil.Day {
	return timeutil.Days(s.now(), s.cfg.Location, s.cfg.Days)
}

// BookIndex is the bookmaker slot used for prices.
func (s *Service) BookIndex() int {
	return s.cfg.BookIndex
}

// ReplaceBoard swaps the stored snapshot for its league and date.
func (s *Service) ReplaceBoard(snap domainboard.Snapshot) {
	s.store.SetBoard(snap)
}

// Snapshot returns the board for a league and date from memory, then from persisted snapshots.
func (s *Service) Snapshot(leagueKey int, date string) (domainboard.Snapshot, bool) {
	if snap, ok := s.store.GetBoard(leagueKey, date); ok {
		return snap, true
	}
	if s.snapshots == nil {
		return domainboard.Snapshot{}, false
	}
	snap, err := s.snapshots.LoadBoard(leagueKey, date)
	if err != nil {
		return domainboard.Snapshot{}, false
	}
	return snap, true
}

// Fixture finds a match and the quotes it should be priced from.
func (s *Service) Fixture(leagueKey int, date, home, away string) (matches.Match, []odds.Quote, bool) {
	snap, ok := s.Snapshot(leagueKey, date)
	if !ok {
		return matches.Match{}, nil, false
	}
	m, ok := matches.Find(snap.Matches, home, away)
	if !ok {
		return matches.Match{}, nil, false
	}
	return m, snap.Quotes, true
}

// Resolve fills in defaults: the first league and today's date.
func (s *Service) Resolve(leagueKey int, date string) (leagues.League, string, error) {
	var league leagues.League
	if leagueKey == 0 {
		league = s.leagues.First()
	} else {
		l, ok := s.leagues.Get(leagueKey)
		if !ok {
			return leagues.League{}, "", ErrUnknownLeague
		}
		league = l
	}

	if date == "" {
		return league, timeutil.FormatDate(s.now().In(s.cfg.Location)), nil
	}
	if !timeutil.NotBefore(date, s.now(), s.cfg.Location) {
		return leagues.League{}, "", ErrInvalidDate
	}
	return league, date, nil
}

// View builds the table for a league and date, highlighting the caller's picks.
func (s *Service) View(leagueKey int, date string, slip slips.Slip) (View, error) {
	league, date, err := s.Resolve(leagueKey, date)
	if err != nil {
		return View{}, err
	}
	snap, ok := s.Snapshot(league.Key, date)
	if !ok {
		return View{}, ErrNotLoaded
	}

	rows := make([]Row, 0, len(snap.Matches))
	for _, m := range snap.Matches {
		rows = append(rows, s.row(m, snap.Quotes, slip))
	}

	return View{
		League:        league,
		Date:          date,
		Rows:          rows,
		OddsAvailable: snap.OddsAvailable(),
		FetchedAt:     snap.FetchedAt,
		Nav:           s.nav(league, date),
	}, nil
}

func (s *Service) row(m matches.Match, quotes []odds.Quote, slip slips.Slip) Row {
	cell := func(kind slips.Kind) Cell {
		return Cell{
			Kind:     kind,
			Label:    display.OddsLabel(m, quotes, s.cfg.BookIndex, kind.OutcomeIndex()),
			Selected: slip.Find(m.HomeTeam, m.AwayTeam, kind) >= 0,
		}
	}
	return Row{
		MatchID:   m.ID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		StartTime: m.StartTime,
		Status:    m.Status,
		Ended:     m.Ended(),
		Clock:     display.ClockLabel(m, s.cfg.Location),
		Score:     display.ScoreLabel(m),
		Home:      cell(slips.KindHome),
		Draw:      cell(slips.KindDraw),
		Away:      cell(slips.KindAway),
	}
}

func (s *Service) nav(league leagues.League, date string) Nav {
	nav := Nav{}
	if prev, ok := s.leagues.Prev(league.Key); ok {
		nav.PrevLeague = &prev
	}
	if next, ok := s.leagues.Next(league.Key); ok {
		nav.NextLeague = &next
	}
	if prev, err := timeutil.ShiftDate(date, -1); err == nil && timeutil.NotBefore(prev, s.now(), s.cfg.Location) {
		nav.PrevDate = prev
	}
	if next, err := timeutil.ShiftDate(date, 1); err == nil {
		nav.NextDate = next
	}
	return nav
}
