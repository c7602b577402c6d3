package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// SetJSON marshals value and stores it under key with a TTL.
func SetJSON(ctx context.Context, key string, value any, expiration time.Duration) {
	if Rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal value for redis")
		return
	}
	if err := Rdb.Set(ctx, key, raw, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write to redis")
	}
}

// GetJSON loads key into out. Returns false on miss, error, or when redis
// is not configured; callers fall back to the live source.
func GetJSON(ctx context.Context, key string, out any) bool {
	if Rdb == nil {
		return false
	}
	raw, err := Rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Error().Err(err).Str("key", key).Msg("failed to read from redis")
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal redis value")
		return false
	}
	return true
}
