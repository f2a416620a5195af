package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/soundscope/soundscope-api/pkg/database"
)

// RateLimiter handles rate limiting using Redis with a sliding window log
type RateLimiter struct {
	redis *database.Redis
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis}
}

// Allow checks if a request is allowed under the limit. When denied,
// retryAfter reports how long until the oldest entry leaves the window.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfter time.Duration, err error) {
	now := time.Now()
	windowStart := now.Add(-window)
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	// Drop entries that fell out of the window
	err = r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.Unix())).Err()
	if err != nil {
		return false, 0, fmt.Errorf("failed to clean old entries: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	if count >= int64(limit) {
		oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			oldestTime := time.Unix(int64(oldest[0].Score), 0)
			retryAfter = window - time.Since(oldestTime)
			if retryAfter < 0 {
				retryAfter = 0
			}
		}
		return false, retryAfter, nil
	}

	member := fmt.Sprintf("%d", now.UnixNano())
	err = r.redis.Client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.Unix()),
		Member: member,
	}).Err()
	if err != nil {
		return false, 0, fmt.Errorf("failed to add entry: %w", err)
	}

	// Expire the key once the window plus a buffer has passed
	_ = r.redis.Client.Expire(ctx, redisKey, window+time.Minute).Err()

	return true, 0, nil
}

// Remaining returns the number of requests still allowed in the window
func (r *RateLimiter) Remaining(ctx context.Context, key string, limit int, window time.Duration) (int, error) {
	windowStart := time.Now().Add(-window)
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart.Unix())).Err()
	if err != nil {
		return 0, fmt.Errorf("failed to clean old entries: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}
