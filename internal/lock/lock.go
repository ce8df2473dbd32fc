// Package lock provides per-key advisory locks used to serialize booking
// creation on one piece of equipment.
package lock

import (
	"context"
	"errors"
	"time"

	"agrorent-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when another holder owns the key.
var ErrNotAcquired = errors.New("lock is held by another request")

// Release gives the lock back. It is safe to call after the TTL expired.
type Release func(ctx context.Context) error

type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

// Noop never blocks. Used when no Redis is configured.
type Noop struct{}

func (Noop) Acquire(ctx context.Context, key string) (Release, error) {
	return func(context.Context) error { return nil }, nil
}

// releaseScript deletes the key only if it still holds our token, so a
// holder whose TTL lapsed cannot free someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisLocker(client redis.Cmdable, prefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	logger.ExternalServiceResult("redis", "SETNX", err, "key", fullKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err()
		if errors.Is(err, redis.Nil) {
			err = nil
		}
		logger.ExternalServiceResult("redis", "release", err, "key", fullKey)
		return err
	}, nil
}

// NewRedisClient opens and pings a client.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
