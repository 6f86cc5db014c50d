// Package redisquota tracks monthly API usage counters in redis. Counters
// are per account per calendar month and expire on their own once the month
// rolls over.
package redisquota

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

type Counter interface {
	// Incr bumps the account's counter for the current month and returns
	// the new value. The first increment of a month sets the key to expire
	// at the start of the next month.
	Incr(ctx context.Context, accountID int, now time.Time) (int64, error)
	// Current returns the counter without bumping it.
	Current(ctx context.Context, accountID int, now time.Time) (int64, error)
	Close() error
}

type counter struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewCounter connects using REDIS_ADDR. Callers treat a missing address as
// "redis not configured" and fall back to counting access-log rows.
func NewCounter(log *logger.Logger) (Counter, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &counter{log: log.With("service", "RedisQuotaCounter"), rdb: rdb}, nil
}

func usageKey(accountID int, now time.Time) string {
	return fmt.Sprintf("campaign-usage-%d-%s", accountID, now.Format("2006-01"))
}

func monthEnd(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
}

func (c *counter) Incr(ctx context.Context, accountID int, now time.Time) (int64, error) {
	key := usageKey(accountID, now)
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := c.rdb.ExpireAt(ctx, key, monthEnd(now)).Err(); err != nil {
			c.log.Warn("failed to set usage key expiry", "key", key, "error", err)
		}
	}
	return count, nil
}

func (c *counter) Current(ctx context.Context, accountID int, now time.Time) (int64, error) {
	count, err := c.rdb.Get(ctx, usageKey(accountID, now)).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *counter) Close() error {
	return c.rdb.Close()
}
