package config

import "time"

const (
	envPort           = "PORT"
	envPollInterval   = "POLL_INTERVAL"
	envProvider       = "PROVIDER"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken     = "ADMIN_TOKEN"
	envAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	envSportradarBaseURL  = "SPORTRADAR_BASE_URL"
	envSportradarOddsURL  = "SPORTRADAR_ODDS_BASE_URL"
	envSportradarAPIKey   = "SPORTRADAR_API_KEY"
	envSportradarMaxPages = "SPORTRADAR_MAX_PAGES"
	envProviderMinGap     = "PROVIDER_MIN_INTERVAL"

	envLeaguesFile = "LEAGUES_FILE"
	envBoardDays   = "BOARD_DAYS"
	envBookIndex   = "BOOK_INDEX"
	envDisplayTZ   = "DISPLAY_TIMEZONE"
	envClearGrace  = "SLIP_CLEAR_GRACE"

	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"
	envSlipTTL       = "SLIP_TTL"
	envPostgresDSN   = "POSTGRES_DSN"
	envAMQPURL       = "AMQP_URL"
	envAMQPExchange  = "AMQP_EXCHANGE"

	envSnapshotSync      = "SNAPSHOT_SYNC_ENABLED"
	envSnapshotFolder    = "SNAPSHOT_FOLDER"
	envSnapshotRetention = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotPrune     = "SNAPSHOT_PRUNE_INTERVAL"

	defaultPort      = "4000"
	defaultProvider  = "fixture"
	defaultLogFormat = "text"
	// Sportradar trial keys allow roughly one request per second.
	defaultPollInterval   = 2 * Duration(time.Minute)
	defaultProviderMinGap = 1100 * Duration(time.Millisecond)
	defaultMetricsPort    = "9090"
	defaultServiceName    = "football-slip-service"

	defaultBoardDays  = 7
	defaultBookIndex  = 4
	defaultDisplayTZ  = "UTC"
	defaultClearGrace = 3 * Duration(time.Hour)

	defaultSnapshotSync      = true
	defaultSnapshotFolder    = "data/snapshots"
	defaultSnapshotRetention = 14
	defaultSnapshotPrune     = Duration(time.Hour)
)
