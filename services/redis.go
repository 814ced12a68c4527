package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetFromRedis reads a cached JSON value into dest.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, dest interface{}) error {
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetToRedis stores a value as JSON with the given TTL.
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	var payload []byte
	switch v := value.(type) {
	case []byte:
		payload = v
	case json.RawMessage:
		payload = v
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		payload = data
	}
	return rdb.Set(ctx, key, payload, ttl).Err()
}

// DeleteFromRedis drops a cache key.
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
