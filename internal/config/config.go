package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	PollInterval   Duration
	Provider       string
	AdminToken     string
	AllowedOrigins []string
	Log            LogConfig
	Sportradar     SportradarConfig
	Board          BoardConfig
	Storage        StorageConfig
	Snapshots      SnapshotConfig
	Metrics        MetricsConfig
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// BoardConfig controls which leagues and days are offered and how prices are read.
type BoardConfig struct {
	LeaguesFile string
	Days        int
	BookIndex   int
	Timezone    string
	ClearGrace  Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first without overriding set variables.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		PollInterval:   durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:       envOrDefault(envProvider, defaultProvider),
		AdminToken:     envOrDefault(envAdminToken, ""),
		AllowedOrigins: listEnv(envAllowedOrigins),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, ""),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Sportradar: loadSportradar(),
		Board:      loadBoard(),
		Storage:    loadStorage(),
		Snapshots:  loadSnapshots(),
		Metrics:    loadMetrics(),
	}
}

func loadBoard() BoardConfig {
	return BoardConfig{
		LeaguesFile: envOrDefault(envLeaguesFile, ""),
		Days:        intEnvOrDefault(envBoardDays, defaultBoardDays),
		BookIndex:   nonNegativeIntEnvOrDefault(envBookIndex, defaultBookIndex),
		Timezone:    envOrDefault(envDisplayTZ, defaultDisplayTZ),
		ClearGrace:  durationEnvOrDefault(envClearGrace, defaultClearGrace),
	}
}
