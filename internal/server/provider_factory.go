package server

import (
	"log/slog"

	"github.com/preston-bernstein/football-slip-service/internal/config"
	"github.com/preston-bernstein/football-slip-service/internal/metrics"
	"github.com/preston-bernstein/football-slip-service/internal/providers"
	"github.com/preston-bernstein/football-slip-service/internal/providers/fixture"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the wrapped provider and a func that stops the rate limiter's ticker.
// The local fixture provider is not rate limited.
func (f providerFactory) build(cfg config.Config) (providers.BoardProvider, func()) {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider, base)
	if _, local := base.(*fixture.Provider); local {
		return providers.NewRetryingProvider(base, f.logger, f.metrics, name, 0, 0), func() {}
	}
	limited := providers.NewRateLimitedProvider(base, cfg.Sportradar.MinInterval, f.logger)
	stop := func() {}
	if c, ok := limited.(interface{ Close() }); ok {
		stop = c.Close
	}
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, 0, 0), stop
}
