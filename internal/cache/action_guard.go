package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActionGuard rejects a user-triggered action while an identical one is
// still in flight. Controllers acquire a key per (user, action, target)
// before the write path and release it when the request finishes; a second
// request for the same key in the window is turned away instead of racing
// the first.
type ActionGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

func ActionKey(userID uint, action string, targetID uint) string {
	return fmt.Sprintf("inflight:%d:%s:%d", userID, action, targetID)
}

type RedisActionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisActionGuard() (*RedisActionGuard, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisActionGuard{
		client: client,
		// TTL caps how long a crashed request can hold its key.
		ttl: 30 * time.Second,
	}, nil
}

func (g *RedisActionGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire action key: %w", err)
	}
	return ok, nil
}

func (g *RedisActionGuard) Release(ctx context.Context, key string) {
	g.client.Del(ctx, key)
}

func (g *RedisActionGuard) Close() error {
	return g.client.Close()
}
