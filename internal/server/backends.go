package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/football-slip-service/internal/app/slips"
	"github.com/preston-bernstein/football-slip-service/internal/config"
	"github.com/preston-bernstein/football-slip-service/internal/logging"
	"github.com/preston-bernstein/football-slip-service/internal/notify"
	"github.com/preston-bernstein/football-slip-service/internal/store"
)

type closer struct {
	name  string
	close func() error
}

// backends holds the slip and pool stores and the pool event publisher.
type backends struct {
	slips     store.SlipStore
	pools     store.PoolStore
	publisher slips.Publisher
	closers   []closer
}

// closeAll releases backends in reverse order of opening.
func (b backends) closeAll(logger *slog.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		c := b.closers[i]
		if err := c.close(); err != nil {
			logging.Warn(logger, "failed to close backend", slog.String("backend", c.name), logging.FieldError, err)
		}
	}
}

// buildBackends connects the configured services. Unset addresses fall back to memory stores
// and a no-op publisher. On error every backend opened so far is closed.
func buildBackends(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (backends, error) {
	b := backends{
		slips:     store.NewMemorySlipStore(),
		pools:     store.NewMemoryPoolStore(),
		publisher: notify.NoopPublisher{},
	}

	if cfg.RedisAddr != "" {
		rs, err := store.NewRedisSlipStore(ctx, store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SlipTTL,
		})
		if err != nil {
			return backends{}, err
		}
		b.slips = rs
		b.closers = append(b.closers, closer{name: "redis", close: rs.Close})
		logging.Info(logger, "slip store ready", slog.String("backend", "redis"), slog.String("addr", cfg.RedisAddr))
	}

	if cfg.PostgresDSN != "" {
		db, err := store.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			b.closeAll(logger)
			return backends{}, err
		}
		ps, err := store.NewPostgresPoolStore(ctx, db)
		if err != nil {
			_ = db.Close()
			b.closeAll(logger)
			return backends{}, err
		}
		b.pools = ps
		b.closers = append(b.closers, closer{name: "postgres", close: ps.Close})
		logging.Info(logger, "pool store ready", slog.String("backend", "postgres"))
	}

	if cfg.AMQPURL != "" {
		pub, err := notify.NewAMQPPublisher(notify.AMQPConfig{URL: cfg.AMQPURL, Exchange: cfg.AMQPExchange})
		if err != nil {
			b.closeAll(logger)
			return backends{}, err
		}
		b.publisher = pub
		b.closers = append(b.closers, closer{name: "amqp", close: pub.Close})
		logging.Info(logger, "pool publisher ready", slog.String("backend", "amqp"))
	}

	return b, nil
}
