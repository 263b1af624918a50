package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MatchQuota enforces the per-seeker cap on manual match requests. The
// counter lives in redis keyed by seeker and local calendar day, expiring at
// the next midnight in the configured timezone.
type MatchQuota struct {
	redis *Redis
	limit int64
	loc   *time.Location
	now   func() time.Time
}

func NewMatchQuota(r *Redis, limit int, loc *time.Location) *MatchQuota {
	if loc == nil {
		loc = time.UTC
	}
	return &MatchQuota{redis: r, limit: int64(limit), loc: loc, now: time.Now}
}

// Take consumes one unit of today's quota. Reports false when the cap is
// already reached.
func (q *MatchQuota) Take(ctx context.Context, seekerID uuid.UUID) (bool, error) {
	now := q.now().In(q.loc)
	key := fmt.Sprintf("villy:manual:%s:%s", seekerID, now.Format("2006-01-02"))
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, q.loc)

	n, err := q.redis.IncrementWithExpiry(ctx, key, midnight)
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Redis down: fail open.
		return true, nil
	}
	if n > q.limit {
		return false, nil
	}
	return true, nil
}

// Refund returns one unit, used when the request fails after the quota was
// consumed but before any record was written.
func (q *MatchQuota) Refund(ctx context.Context, seekerID uuid.UUID) {
	now := q.now().In(q.loc)
	key := fmt.Sprintf("villy:manual:%s:%s", seekerID, now.Format("2006-01-02"))
	q.redis.Decrement(ctx, key)
}
