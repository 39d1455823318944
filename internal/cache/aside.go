package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: try the cache first, fall back to
// the loader on a miss and populate the cache with the loaded value. dest must
// be a pointer; the loader is expected to fill it. When Redis is unavailable
// the loader runs directly, so callers never observe cache failures.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and reload.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis error other than a miss: degrade to the loader.
		return load()
	}

	if err := load(); err != nil {
		return err
	}

	if payload, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, payload, ttl)
	}
	return nil
}
