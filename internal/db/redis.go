package db

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisOnce sync.Once
	rdb       *redis.Client
	redisErr  error
)

// NewRedis connects to the secondary store using REDIS_URL and verifies the
// connection with a short ping timeout.
func NewRedis(ctx context.Context) (*redis.Client, error) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}

	return client, nil
}

// Redis returns the process-wide client for the secondary store, creating it
// on first call. Initialization is idempotent, same contract as Pool.
func Redis(ctx context.Context) (*redis.Client, error) {
	redisOnce.Do(func() {
		rdb, redisErr = NewRedis(ctx)
	})
	return rdb, redisErr
}
