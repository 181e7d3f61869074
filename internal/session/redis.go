package session

import (
	"context" // Context for Redis operations
	"time"    // TTL computation

	"catalog_shop/internal/utils" // Redis JSON helpers

	"github.com/redis/go-redis/v9" // Redis client
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis as JSON values expiring with the session
type RedisStore struct {
	rdb redis.Cmdable
}

// NewRedisStore creates a RedisStore over rdb
func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Save stores s until its expiry
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil // Already expired
	}
	return utils.SetJSON(ctx, r.rdb, redisKeyPrefix+s.ID, s, ttl)
}

// Get returns the session with the given id
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	found, err := utils.GetJSON(ctx, r.rdb, redisKeyPrefix+id, &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Delete removes the session with the given id
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return utils.DeleteKey(ctx, r.rdb, redisKeyPrefix+id)
}
