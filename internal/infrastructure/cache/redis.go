package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fitwork/internal/config"
)

// Redis wraps the shared client. When the server is unreachable the wrapper
// degrades to a no-op: the scheduler still runs (the local run-lock guards a
// single instance) and quota checks fail open, with a single warning logged.
type Redis struct {
	client *redis.Client
	log    *zap.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, log *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if log != nil {
			log.Warn("redis unavailable, coordination degraded to single-instance", zap.Error(err))
		}
		_ = client.Close()
		return &Redis{client: nil, log: log}
	}

	return &Redis{client: client, log: log}
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) unavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnOnce(err error) {
	if r == nil || r.log == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn("redis error, coordination degraded", zap.Error(err))
	}
}

// AcquireLock takes a cross-instance lock via SETNX. Reports true when the
// lock is held by this caller, and true on redis unavailability so a degraded
// deployment keeps working.
func (r *Redis) AcquireLock(ctx context.Context, key, holder string, ttl time.Duration) (bool, error) {
	if r.unavailable() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	ok, err := r.client.SetNX(ctx, key, holder, ttl).Result()
	if err != nil {
		r.warnOnce(err)
		return true, nil
	}
	return ok, nil
}

func (r *Redis) ReleaseLock(ctx context.Context, key string) {
	if r.unavailable() {
		return
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnOnce(err)
	}
}

// IncrementWithExpiry bumps a counter and, on its first increment, sets the
// absolute expiry. Returns the counter value after the bump.
func (r *Redis) IncrementWithExpiry(ctx context.Context, key string, expireAt time.Time) (int64, error) {
	if r.unavailable() {
		return 0, nil
	}
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.warnOnce(err)
		return 0, nil
	}
	if n == 1 {
		if err := r.client.ExpireAt(ctx, key, expireAt).Err(); err != nil {
			r.warnOnce(err)
		}
	}
	return n, nil
}

func (r *Redis) Decrement(ctx context.Context, key string) {
	if r.unavailable() {
		return
	}
	if err := r.client.Decr(ctx, key).Err(); err != nil {
		r.warnOnce(err)
	}
}
