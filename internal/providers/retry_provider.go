package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/football-slip-service/internal/domain/matches"
	"github.com/preston-bernstein/football-slip-service/internal/domain/odds"
	"github.com/preston-bernstein/football-slip-service/internal/leagues"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a BoardProvider with retry/backoff behavior and records every attempt.
type retryingProvider struct {
	inner        BoardProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner BoardProvider, logger *slog.Logger, rec *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) BoardProvider {
	return NewRetryingProviderWithRNG(inner, logger, rec, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with an injectable jitter source.
func NewRetryingProviderWithRNG(inner BoardProvider, logger *slog.Logger, rec *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) BoardProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchMatches(ctx context.Context, league leagues.League, date string) ([]matches.Match, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return withRetry(ctx, r, "matches", func(ctx context.Context) ([]matches.Match, error) {
		return r.inner.FetchMatches(ctx, league, date)
	})
}

func (r *retryingProvider) FetchOdds(ctx context.Context, league leagues.League, date string) ([]odds.Quote, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return withRetry(ctx, r, "odds", func(ctx context.Context) ([]odds.Quote, error) {
		return r.inner.FetchOdds(ctx, league, date)
	})
}

func withRetry[T any](ctx context.Context, r *retryingProvider, resource string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		items, err := fetch(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return items, nil
		}
		lastErr = err

		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
		}

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "provider fetch retry",
			"resource", resource,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			logging.FieldError, err,
		)

		delay := r.computeDelay(err, attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "provider fetch failed", "resource", resource, "attempts", r.maxAttempts, logging.FieldError, lastErr)
	return nil, lastErr
}

// computeDelay honours Retry-After on rate limits and otherwise jitters the backoff into [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := int64(base / 2)
	r.rngMu.Lock()
	jitter := r.rng.Int63n(half + 1)
	r.rngMu.Unlock()
	return time.Duration(half + jitter)
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		args = append(args, logging.FieldProvider, r.providerName)
		logger.Warn(msg, args...)
	}
}
