package nodeid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for RedisAllocator.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	Key         string
	DialTimeout time.Duration
}

// DefaultRedisConfig returns the settings used when none are configured.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:        "localhost:6379",
		Key:         "uuidgen:node",
		DialTimeout: 5 * time.Second,
	}
}

// DialRedis connects to Redis and verifies the connection with PING.
func DialRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisAllocator leases node ids by incrementing a Redis counter.
type RedisAllocator struct {
	client redis.Cmdable
	key    string
	log    *slog.Logger
}

// NewRedisAllocator creates an allocator over key.
func NewRedisAllocator(client redis.Cmdable, key string, logger *slog.Logger) *RedisAllocator {
	return &RedisAllocator{
		client: client,
		key:    key,
		log:    orDiscard(logger).With("component", "nodeid.redis", "key", key),
	}
}

// Next increments the counter and returns the node id for the new value.
func (a *RedisAllocator) Next(ctx context.Context) (uint64, error) {
	n, err := a.client.Incr(ctx, a.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", a.key, err)
	}
	id, err := ToNodeID(uint64(n))
	if err != nil {
		return 0, err
	}
	a.log.Debug("leased node id", "seq", n)
	return id, nil
}
