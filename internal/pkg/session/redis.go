package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "authsession:"

// Redis is a Store backed by a shared Redis, letting any service replica
// serve the verify call for a challenge issued by another.
type Redis struct {
	client *redis.Client
}

// NewRedis returns a Redis-backed attempt-note store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func redisKey(attemptID, key string) string {
	return redisPrefix + attemptID + ":" + key
}

// Get returns the note value and whether it exists.
func (r *Redis) Get(ctx context.Context, attemptID, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, redisKey(attemptID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return val, true, nil
}

// Set writes a note with the given ttl.
func (r *Redis) Set(ctx context.Context, attemptID, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, redisKey(attemptID, key), value, ttl).Err()
}

// Remove deletes a note.
func (r *Redis) Remove(ctx context.Context, attemptID, key string) error {
	return r.client.Del(ctx, redisKey(attemptID, key)).Err()
}
