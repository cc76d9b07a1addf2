package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a BoardProvider and enforces a minimum interval between calls.
// Match and odds fetches share the same budget.
type rateLimitedProvider struct {
	next     BoardProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a BoardProvider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next BoardProvider, interval time.Duration, logger *slog.Logger) BoardProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	if err := p.wait(ctx, "matches", league, date); err != nil {
		return nil, err
	}
	return p.next.FetchMatches(ctx, league, date)
}

func (p *rateLimitedProvider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	if err := p.wait(ctx, "odds", league, date); err != nil {
		return nil, err
	}
	return p.next.FetchOdds(ctx, league, date)
}

// Close stops the underlying ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context, resource string, league leagues.League, date string) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", "resource", resource)
		return ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider fetch",
		"resource", resource,
		logging.FieldLeague, league.Key,
		logging.FieldDate, date,
	)
	return nil
}
