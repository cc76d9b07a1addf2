package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
)

const defaultSlipPrefix = "slips"

// RedisConfig controls the Redis connection used for slips.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// RedisSlipStore keeps each user's slip as a JSON value under <prefix>:<user>.
type RedisSlipStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSlipStore connects to Redis and verifies the connection with a ping.
func NewRedisSlipStore(ctx context.Context, cfg RedisConfig) (*RedisSlipStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisSlipStoreWithClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewRedisSlipStoreWithClient wraps an existing client. A zero ttl keeps slips forever.
func NewRedisSlipStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisSlipStore {
	if prefix == "" {
		prefix = defaultSlipPrefix
	}
	return &RedisSlipStore{client: client, prefix: prefix, ttl: ttl}
}

// GetSlip loads the user's slip or returns ErrNotFound.
func (r *RedisSlipStore) GetSlip(ctx context.Context, userID string) (slips.Slip, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return slips.Slip{}, ErrNotFound
	}
	if err != nil {
		return slips.Slip{}, fmt.Errorf("failed to get slip: %w", err)
	}
	return decodeSlip(data)
}

// SaveSlip writes the slip, refreshing its ttl.
func (r *RedisSlipStore) SaveSlip(ctx context.Context, slip slips.Slip) error {
	data, err := encodeSlip(slip)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(slip.UserID), data, r.ttl).Err()
}

// DeleteSlip removes the user's slip.
func (r *RedisSlipStore) DeleteSlip(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}

// Ping reports whether Redis is reachable.
func (r *RedisSlipStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisSlipStore) Close() error {
	return r.client.Close()
}

func (r *RedisSlipStore) key(userID string) string {
	return r.prefix + ":" + userID
}

func encodeSlip(slip slips.Slip) ([]byte, error) {
	data, err := json.Marshal(slip)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slip: %w", err)
	}
	return data, nil
}

func decodeSlip(data []byte) (slips.Slip, error) {
	var slip slips.Slip
	if err := json.Unmarshal(data, &slip); err != nil {
		return slips.Slip{}, fmt.Errorf("failed to unmarshal slip: %w", err)
	}
	return slip, nil
}
