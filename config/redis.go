package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// Ctx is the shared context for Redis operations.
var Ctx = context.Background()

// ConnectRedis returns a client for the configured Redis instance.
func ConnectRedis() (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := rdb.Ping(Ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
