package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainboard "github.com/preston-bernstein/football-slip-service/internal/domain/board"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/metrics"
	"github.com/preston-bernstein/football-slip-service/internal/providers"
	"github.com/preston-bernstein/football-slip-service/internal/timeutil"
)

const (
	defaultInterval = 30 * time.Second
	defaultDays     = 7
)

// BoardSink receives refreshed boards.
type BoardSink interface {
	ReplaceBoard(snap domainboard.Snapshot)
}

// SnapshotWriter persists board snapshots to disk.
type SnapshotWriter interface {
	WriteBoardSnapshot(snap domainboard.Snapshot) error
}

// Config controls which boards are refreshed and how often.
type Config struct {
	Interval time.Duration
	Days     int
	Location *time.Location
}

// Poller fetches matches and odds for every league across the date window on an interval.
type Poller struct {
	provider providers.BoardProvider
	boards   BoardSink
	writer   SnapshotWriter
	leagues  *leagues.Registry
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	days     int
	loc      *time.Location
	now      func() time.Time

	refreshMu sync.Mutex

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Boards              int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. writer may be nil.
func New(provider providers.BoardProvider, boards BoardSink, writer SnapshotWriter, reg *leagues.Registry, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Days <= 0 {
		cfg.Days = defaultDays
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if reg == nil {
		reg = leagues.Default()
	}
	return &Poller{
		provider: provider,
		boards:   boards,
		writer:   writer,
		leagues:  reg,
		logger:   logger,
		metrics:  recorder,
		interval: cfg.Interval,
		days:     cfg.Days,
		loc:      cfg.Location,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm boards on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Refresh runs one cycle immediately and reports its error.
func (p *Poller) Refresh(ctx context.Context) error {
	return p.fetchOnce(ctx)
}

func (p *Poller) fetchOnce(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)

	var errs []error
	refreshed := 0
	for _, league := range p.leagues.All() {
		for _, day := range timeutil.Days(p.now(), p.loc, p.days) {
			if ctx.Err() != nil {
				errs = append(errs, ctx.Err())
				break
			}
			if err := p.refreshBoard(ctx, league, day.Date); err != nil {
				errs = append(errs, err)
				continue
			}
			refreshed++
		}
	}

	err := errors.Join(errs...)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller refresh incomplete", err,
			logging.FieldCount, refreshed,
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
		p.recordFailure(err, start, refreshed)
		return err
	}

	p.recordSuccess(start, refreshed)
	logging.Info(p.logger, "poller refreshed boards",
		logging.FieldCount, refreshed,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

// refreshBoard replaces one league/date board. Missing odds still publish the fixtures.
func (p *Poller) refreshBoard(ctx context.Context, league leagues.League, date string) error {
	list, err := p.provider.FetchMatches(ctx, league, date)
	if err != nil {
		return fmt.Errorf("league %d %s: %w", league.Key, date, err)
	}

	quotes, err := p.provider.FetchOdds(ctx, league, date)
	if err != nil {
		logging.Warn(p.logger, "odds fetch failed",
			logging.FieldLeague, league.Key,
			logging.FieldDate, date,
			logging.FieldError, err,
		)
		quotes = []odds.Quote{}
	}

	snap := domainboard.NewSnapshot(league.Key, date, list, quotes, p.now())
	if p.boards != nil {
		p.boards.ReplaceBoard(snap)
	}
	if p.writer != nil {
		if writeErr := p.writer.WriteBoardSnapshot(snap); writeErr != nil {
			logging.Error(p.logger, "poller snapshot write failed", writeErr,
				logging.FieldLeague, league.Key,
				logging.FieldDate, date,
			)
		}
	}
	return nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, boards int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Boards = boards
}

func (p *Poller) recordFailure(err error, at time.Time, boards int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
	p.status.Boards = boards
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.BoardProvider {
	return p.provider
}
