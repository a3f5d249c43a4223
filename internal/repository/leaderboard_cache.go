package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache stores rendered leaderboards per template and period.
// All periods of a template share one hash so a single delete invalidates them.
type LeaderboardCache interface {
	Get(ctx context.Context, quizID uint, period string) ([]byte, bool, error)
	Set(ctx context.Context, quizID uint, period string, payload []byte) error
	Invalidate(ctx context.Context, quizID uint) error
	Ping(ctx context.Context) error
}

const leaderboardKeyPrefix = "leaderboard:"

func LeaderboardKey(quizID uint) string {
	return fmt.Sprintf("%s%d", leaderboardKeyPrefix, quizID)
}

type redisLeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache returns a redis-backed cache, or a no-op cache when client is nil.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) LeaderboardCache {
	if client == nil {
		return noopLeaderboardCache{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisLeaderboardCache{client: client, ttl: ttl}
}

func (c *redisLeaderboardCache) Get(ctx context.Context, quizID uint, period string) ([]byte, bool, error) {
	data, err := c.client.HGet(ctx, LeaderboardKey(quizID), period).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis hget leaderboard %d/%s: %w", quizID, period, err)
	}
	return data, true, nil
}

func (c *redisLeaderboardCache) Set(ctx context.Context, quizID uint, period string, payload []byte) error {
	key := LeaderboardKey(quizID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, period, payload)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset leaderboard %d/%s: %w", quizID, period, err)
	}
	return nil
}

func (c *redisLeaderboardCache) Invalidate(ctx context.Context, quizID uint) error {
	if err := c.client.Del(ctx, LeaderboardKey(quizID)).Err(); err != nil {
		return fmt.Errorf("redis del leaderboard %d: %w", quizID, err)
	}
	return nil
}

func (c *redisLeaderboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

type noopLeaderboardCache struct{}

func (noopLeaderboardCache) Get(context.Context, uint, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (noopLeaderboardCache) Set(context.Context, uint, string, []byte) error { return nil }

func (noopLeaderboardCache) Invalidate(context.Context, uint) error { return nil }

func (noopLeaderboardCache) Ping(context.Context) error { return ErrCacheDisabled }

var ErrCacheDisabled = errors.New("leaderboard cache disabled")
