package config

// StorageConfig selects the backing services. Empty addresses fall back to in-memory stores
// and a no-op publisher.
type StorageConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SlipTTL       Duration
	PostgresDSN   string
	AMQPURL       string
	AMQPExchange  string
}

func loadStorage() StorageConfig {
	return StorageConfig{
		RedisAddr:     envOrDefault(envRedisAddr, ""),
		RedisPassword: envOrDefault(envRedisPassword, ""),
		RedisDB:       nonNegativeIntEnvOrDefault(envRedisDB, 0),
		SlipTTL:       durationEnvOrDefault(envSlipTTL, 0),
		PostgresDSN:   envOrDefault(envPostgresDSN, ""),
		AMQPURL:       envOrDefault(envAMQPURL, ""),
		AMQPExchange:  envOrDefault(envAMQPExchange, ""),
	}
}
