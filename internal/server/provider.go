package server

import (
	"log/slog"

	"github.com/preston-bernstein/football-slip-service/internal/config"
	"github.com/preston-bernstein/football-slip-service/internal/providers"
	"github.com/preston-bernstein/football-slip-service/internal/providers/fixture"
	"github.com/preston-bernstein/football-slip-service/internal/providers/sportradar"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.BoardProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "sportradar":
		return sportradar.NewClient(sportradar.Config{
			BaseURL:     cfg.Sportradar.BaseURL,
			OddsBaseURL: cfg.Sportradar.OddsBaseURL,
			APIKey:      cfg.Sportradar.APIKey,
			Timezone:    cfg.Board.Timezone,
			MaxPages:    cfg.Sportradar.MaxPages,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
