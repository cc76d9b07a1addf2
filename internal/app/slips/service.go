package slips

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	domainslips "github.com/preston-bernstein/football-slip-service/internal/domain/slips"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/metrics"
	"github.com/preston-bernstein/football-slip-service/internal/store"
)

// RedirectAfterSubmit is where clients navigate once a slip enters a pool.
const RedirectAfterSubmit = "/betting-slips"

const defaultClearGrace = 3 * time.Hour

// Boards resolves fixtures and their quotes for pricing.
type Boards interface {
	Resolve(leagueKey int, date string) (leagues.League, string, error)
	Fixture(leagueKey int, date, home, away string) (matches.Match, []odds.Quote, bool)
	BookIndex() int
}

// Notifier pushes notices to a user's open clients.
type Notifier interface {
	Notify(userID string, notice domainslips.Notice)
}

// Publisher announces entered pools to downstream consumers.
type Publisher interface {
	PublishPoolEntered(ctx context.Context, pool domainslips.Pool) error
}

// Config tunes slip rules.
type Config struct {
	ClearGrace time.Duration
	Now        func() time.Time
}

// PickRequest identifies one outcome cell on the board.
type PickRequest struct {
	LeagueKey int              `json:"league"`
	Date      string           `json:"date"`
	HomeTeam  string           `json:"homeTeam"`
	AwayTeam  string           `json:"awayTeam"`
	Selection domainslips.Kind `json:"selection"`
}

// ToggleResult is the slip after a toggle and the transition performed.
type ToggleResult struct {
	Slip   domainslips.Slip   `json:"slip"`
	Action domainslips.Action `json:"action"`
}

// SubmitResult is the outcome of entering a slip into a pool.
type SubmitResult struct {
	Slip     domainslips.Slip   `json:"slip"`
	Pool     domainslips.Pool   `json:"pool"`
	Notice   domainslips.Notice `json:"notice"`
	Redirect string             `json:"redirect"`
}

// Service applies slip rules to persisted slips. Operations for one owner are serialized.
type Service struct {
	slips     store.SlipStore
	pools     store.PoolStore
	boards    Boards
	notifier  Notifier
	publisher Publisher
	metrics   *metrics.Recorder
	logger    *slog.Logger
	cfg       Config
	locks     *keyedMutex
	now       func() time.Time
	newID     func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithNotifier delivers notices to connected clients.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithPublisher announces entered pools.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics records slip actions.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// WithLogger sets the fallback logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a Service backed by the given stores.
func NewService(slipStore store.SlipStore, poolStore store.PoolStore, boards Boards, cfg Config, opts ...Option) *Service {
	if cfg.ClearGrace <= 0 {
		cfg.ClearGrace = defaultClearGrace
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Service{
		slips:  slipStore,
		pools:  poolStore,
		boards: boards,
		cfg:    cfg,
		locks:  newKeyedMutex(),
		now:    cfg.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the owner's slip, or an empty one.
func (s *Service) Get(ctx context.Context, id Identity) (domainslips.Slip, error) {
	if id.Key() == "" {
		return domainslips.NewSlip(""), nil
	}
	slip, _, err := s.load(ctx, id)
	return slip, err
}

// Toggle adds the pick when absent and removes it when present.
func (s *Service) Toggle(ctx context.Context, id Identity, req PickRequest) (ToggleResult, error) {
	var result ToggleResult
	err := s.mutate(ctx, id, "toggle", func(slip domainslips.Slip, now time.Time) (domainslips.Slip, string, error) {
		held := slip.Find(req.HomeTeam, req.AwayTeam, req.Selection) >= 0
		var (
			next   domainslips.Slip
			action domainslips.Action
		)
		in, err := s.input(req, now, held)
		switch {
		case errors.Is(err, domainslips.ErrUnknownMatch) && held:
			// The board is gone; the pick can still be taken off.
			next, err = domainslips.Remove(slip, req.HomeTeam, req.AwayTeam, req.Selection, now)
			action = domainslips.ActionRemoved
		case err != nil:
			return slip, "", err
		default:
			next, action, err = domainslips.Toggle(slip, in)
		}
		if err != nil {
			return slip, "", err
		}
		if action == domainslips.ActionRemoved && next.EnteredPool() {
			if next, err = s.syncPool(ctx, next, now); err != nil {
				return slip, "", err
			}
		}
		result = ToggleResult{Slip: next, Action: action}
		return next, string(action), nil
	})
	return result, err
}

// Add puts a pick on the slip. An existing pick for the match is a notice, not a toggle.
func (s *Service) Add(ctx context.Context, id Identity, req PickRequest) (domainslips.Slip, error) {
	var result domainslips.Slip
	err := s.mutate(ctx, id, "add", func(slip domainslips.Slip, now time.Time) (domainslips.Slip, string, error) {
		in, err := s.input(req, now, false)
		if err != nil {
			return slip, "", err
		}
		if !in.Kind.Valid() {
			return slip, "", domainslips.ErrInvalidKind
		}
		if in.Match.Ended() {
			return slip, "", domainslips.ErrMatchEnded
		}
		if len(in.Quotes) == 0 {
			return slip, "", domainslips.ErrOddsUnavailable
		}
		sel, err := domainslips.NewSelection(in)
		if err != nil {
			return slip, "", err
		}
		next, err := domainslips.Add(slip, sel, now)
		if err != nil {
			return slip, "", err
		}
		result = next
		return next, string(domainslips.ActionAdded), nil
	})
	return result, err
}

// Remove drops a pick. Picks in an entered pool can be removed until its first kickoff;
// removing the last one withdraws the pool.
func (s *Service) Remove(ctx context.Context, id Identity, home, away string, kind domainslips.Kind) (domainslips.Slip, error) {
	var result domainslips.Slip
	err := s.mutate(ctx, id, "remove", func(slip domainslips.Slip, now time.Time) (domainslips.Slip, string, error) {
		next, err := domainslips.Remove(slip, home, away, kind, now)
		if err != nil {
			return slip, "", err
		}
		if next.EnteredPool() {
			if next, err = s.syncPool(ctx, next, now); err != nil {
				return slip, "", err
			}
		}
		result = next
		return next, string(domainslips.ActionRemoved), nil
	})
	return result, err
}

// Submit enters the slip into a new pool.
func (s *Service) Submit(ctx context.Context, id Identity) (SubmitResult, error) {
	if id.UserID == "" {
		s.reject(ctx, id, "submit", domainslips.ErrLoginRequired)
		return SubmitResult{}, domainslips.ErrLoginRequired
	}

	pool, slip, err := s.enter(ctx, id)
	if err != nil {
		return SubmitResult{}, err
	}

	s.metrics.RecordSlipAction("submit", domainslips.NoticeSlipCreated.Code)
	s.metrics.RecordPoolEntered(len(pool.Selections))
	s.notify(id, *domainslips.NoticeSlipCreated)
	if s.publisher != nil {
		if err := s.publisher.PublishPoolEntered(ctx, pool); err != nil {
			logging.Error(s.log(ctx), "pool event publish failed", err, logging.FieldPoolID, pool.ID)
		}
	}
	logging.Info(s.log(ctx), "slip entered pool",
		logging.FieldUserID, id.UserID,
		logging.FieldPoolID, pool.ID,
		logging.FieldCount, len(pool.Selections),
	)
	return SubmitResult{
		Slip:     slip,
		Pool:     pool,
		Notice:   *domainslips.NoticeSlipCreated,
		Redirect: RedirectAfterSubmit,
	}, nil
}

// enter marks the slip entered, then stores the pool. A failed pool write puts the
// draft back so a retry starts from the same state.
func (s *Service) enter(ctx context.Context, id Identity) (domainslips.Pool, domainslips.Slip, error) {
	unlock := s.lock(id)
	defer unlock()

	slip, adopted, err := s.load(ctx, id)
	if err != nil {
		return domainslips.Pool{}, domainslips.Slip{}, err
	}
	if err := domainslips.CheckSubmit(slip, id.UserID); err != nil {
		s.reject(ctx, id, "submit", err)
		return domainslips.Pool{}, domainslips.Slip{}, err
	}

	next, pool := domainslips.Enter(slip, s.newID(), s.now())
	if err := s.slips.SaveSlip(ctx, next); err != nil {
		return domainslips.Pool{}, domainslips.Slip{}, err
	}
	s.dropGuest(ctx, adopted)
	if err := s.pools.SavePool(ctx, pool); err != nil {
		if rbErr := s.slips.SaveSlip(ctx, slip); rbErr != nil {
			logging.Error(s.log(ctx), "slip rollback failed", rbErr, logging.FieldUserID, id.Key(), logging.FieldPoolID, pool.ID)
		}
		return domainslips.Pool{}, domainslips.Slip{}, err
	}
	return pool, next, nil
}

// Clear discards the slip when allowed.
func (s *Service) Clear(ctx context.Context, id Identity) error {
	key := id.Key()
	if key == "" {
		return domainslips.ErrLoginRequired
	}
	unlock := s.lock(id)
	defer unlock()

	slip, adopted, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !domainslips.CanClear(slip, s.now(), s.cfg.ClearGrace) {
		s.reject(ctx, id, "clear", domainslips.ErrPoolLocked)
		return domainslips.ErrPoolLocked
	}
	if err := s.slips.DeleteSlip(ctx, key); err != nil {
		return err
	}
	s.dropGuest(ctx, adopted)
	s.metrics.RecordSlipAction("clear", "cleared")
	return nil
}

// Pool returns a submitted pool.
func (s *Service) Pool(ctx context.Context, id string) (domainslips.Pool, error) {
	return s.pools.GetPool(ctx, id)
}

type mutation func(slip domainslips.Slip, now time.Time) (domainslips.Slip, string, error)

// mutate loads, changes and saves the owner's slip under the owner's lock. Notices are
// pushed and counted; the stored slip is only written on success.
func (s *Service) mutate(ctx context.Context, id Identity, action string, fn mutation) error {
	key := id.Key()
	if key == "" {
		s.reject(ctx, id, action, domainslips.ErrLoginRequired)
		return domainslips.ErrLoginRequired
	}
	unlock := s.lock(id)
	defer unlock()

	slip, adopted, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	next, result, err := fn(slip, now)
	if err != nil {
		if _, ok := domainslips.AsNotice(err); ok {
			s.reject(ctx, id, action, err)
		}
		return err
	}
	if err := s.slips.SaveSlip(ctx, next); err != nil {
		return err
	}
	s.dropGuest(ctx, adopted)
	s.metrics.RecordSlipAction(action, result)
	logging.Debug(s.log(ctx), "slip updated", "action", action, "result", result, logging.FieldUserID, key)
	return nil
}

// lock holds the owner's key, plus the session's guest key for a logged-in user.
func (s *Service) lock(id Identity) func() {
	return s.locks.LockAll(id.Key(), id.guestKey())
}

// load returns the owner's slip. A logged-in user without a slip takes over the guest
// slip of the same session; adopted names the guest key to drop once the slip is saved.
func (s *Service) load(ctx context.Context, id Identity) (slip domainslips.Slip, adopted string, err error) {
	key := id.Key()
	slip, err = s.slips.GetSlip(ctx, key)
	if err == nil {
		return slip, "", nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domainslips.Slip{}, "", err
	}

	guest := id.guestKey()
	if guest == "" {
		return domainslips.NewSlip(key), "", nil
	}
	slip, err = s.slips.GetSlip(ctx, guest)
	if errors.Is(err, store.ErrNotFound) {
		return domainslips.NewSlip(key), "", nil
	}
	if err != nil {
		return domainslips.Slip{}, "", err
	}
	slip.UserID = key
	return slip, guest, nil
}

func (s *Service) dropGuest(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.slips.DeleteSlip(ctx, key); err != nil {
		logging.Warn(s.log(ctx), "guest slip cleanup failed", "err", err, logging.FieldUserID, key)
		return
	}
	logging.Debug(s.log(ctx), "guest slip adopted", logging.FieldUserID, key)
}

// input resolves the fixture behind a pick. Picks already on the slip skip the date
// window so they can be taken off after their day has passed.
func (s *Service) input(req PickRequest, now time.Time, held bool) (domainslips.ToggleInput, error) {
	date := req.Date
	league, resolved, err := s.boards.Resolve(req.LeagueKey, req.Date)
	switch {
	case err == nil:
		date = resolved
	case held && req.Date != "":
		if league, _, err = s.boards.Resolve(req.LeagueKey, ""); err != nil {
			return domainslips.ToggleInput{}, domainslips.ErrUnknownMatch
		}
	default:
		return domainslips.ToggleInput{}, domainslips.ErrUnknownMatch
	}
	m, quotes, ok := s.boards.Fixture(league.Key, date, req.HomeTeam, req.AwayTeam)
	if !ok {
		return domainslips.ToggleInput{}, domainslips.ErrUnknownMatch
	}
	return domainslips.ToggleInput{
		Match:     m,
		Quotes:    quotes,
		Kind:      req.Selection,
		LeagueKey: league.SeasonID,
		BookIndex: s.boards.BookIndex(),
		Now:       now,
	}, nil
}

// syncPool mirrors the slip's picks onto its pool. A pool left without picks is
// withdrawn and the slip becomes a draft again.
func (s *Service) syncPool(ctx context.Context, slip domainslips.Slip, now time.Time) (domainslips.Slip, error) {
	if len(slip.Selections) == 0 {
		if err := s.pools.DeletePool(ctx, slip.PoolID); err != nil {
			return slip, err
		}
		logging.Info(s.log(ctx), "pool withdrawn", logging.FieldPoolID, slip.PoolID, logging.FieldUserID, slip.UserID)
		return domainslips.Withdraw(slip, now), nil
	}
	pool, err := s.pools.GetPool(ctx, slip.PoolID)
	if err != nil {
		return slip, err
	}
	pool.Selections = slip.Selections
	pool.UpdatedAt = now
	return slip, s.pools.SavePool(ctx, pool)
}

func (s *Service) reject(ctx context.Context, id Identity, action string, err error) {
	notice, ok := domainslips.AsNotice(err)
	if !ok {
		return
	}
	s.metrics.RecordSlipAction(action, notice.Code)
	s.notify(id, *notice)
	logging.Debug(s.log(ctx), "slip action rejected", "action", action, logging.FieldNotice, notice.Code, logging.FieldUserID, id.Key())
}

func (s *Service) notify(id Identity, notice domainslips.Notice) {
	if s.notifier == nil || id.Key() == "" {
		return
	}
	s.notifier.Notify(id.Key(), notice)
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}
