package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"adRecoDashboard/pkg/config"
	"adRecoDashboard/pkg/logger"
)

const pingTimeout = 5 * time.Second

// clientOptions maps the Redis settings onto go-redis options. Session reads
// and writes are single small keys, so timeouts stay short.
func clientOptions(cfg config.RedisConfig) *redis.Options {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}

	return &redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     poolSize,
		MinIdleConns: max(1, poolSize/5),
	}
}

// NewRedisClient connects the session store and verifies it with a PING.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts := clientOptions(cfg.Redis)
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logger.Debug("redis_connected", "addr", opts.Addr, "db", opts.DB, "pool_size", opts.PoolSize)
	return client, nil
}

// CloseRedisClient closes the Redis connection
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
