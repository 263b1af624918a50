// Package scheduler owns the daily matching pass: a cron trigger, an
// at-most-one-run guard, and the bounded per-seeker fan-out.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fitwork/internal/domain/listing"
	"fitwork/internal/worker"
)

const (
	runLockKey = "villy:daily:lock"
	runLockTTL = 2 * time.Hour
)

// Matcher is the per-seeker matching step, satisfied by the match usecase.
type Matcher interface {
	MatchForSeeker(ctx context.Context, seekerID uuid.UUID, at time.Time) (*listing.Listing, error)
}

// SeekerSource pages over every seeker with a profile.
type SeekerSource interface {
	ListSeekerIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error)
}

// Locker is the cross-instance run lock; the redis wrapper satisfies it.
type Locker interface {
	AcquireLock(ctx context.Context, key, holder string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string)
}

// Runner executes one full matching pass.
type Runner struct {
	seekers  SeekerSource
	matcher  Matcher
	pageSize int
	workers  int
	log      *zap.Logger
}

func NewRunner(seekers SeekerSource, matcher Matcher, pageSize, workers int, log *zap.Logger) *Runner {
	if pageSize <= 0 {
		pageSize = 500
	}
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{seekers: seekers, matcher: matcher, pageSize: pageSize, workers: workers, log: log}
}

type RunStats struct {
	Seekers int64
	Matched int64
	Failed  int64
}

// RunOnce matches every seeker once. A seeker's failure is logged and
// isolated; only a failure to page the seekers themselves aborts the pass.
// Cancellation stops scheduling new seekers and leaves written records
// intact.
func (r *Runner) RunOnce(ctx context.Context, at time.Time) (RunStats, error) {
	var stats RunStats

	pool := worker.NewPool(r.workers, r.workers*2)
	results := pool.Run(ctx)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range results {
		}
	}()

	var submitErr error
	for offset := 0; ; offset += r.pageSize {
		ids, err := r.seekers.ListSeekerIDs(ctx, r.pageSize, offset)
		if err != nil {
			submitErr = fmt.Errorf("list seekers: %w", err)
			break
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			seekerID := id
			accepted := pool.Submit(ctx, func(taskCtx context.Context) error {
				found, err := r.matcher.MatchForSeeker(taskCtx, seekerID, at)
				if err != nil {
					atomic.AddInt64(&stats.Failed, 1)
					r.log.Error("seeker matching failed",
						zap.String("seeker_id", seekerID.String()),
						zap.Error(err),
					)
					return err
				}
				if found != nil {
					atomic.AddInt64(&stats.Matched, 1)
				}
				return nil
			})
			if !accepted {
				submitErr = ctx.Err()
				break
			}
			atomic.AddInt64(&stats.Seekers, 1)
		}
		if submitErr != nil {
			break
		}
		if len(ids) < r.pageSize {
			break
		}
	}

	pool.Close()
	<-drained

	r.log.Info("matching pass finished",
		zap.Int64("seekers", atomic.LoadInt64(&stats.Seekers)),
		zap.Int64("matched", atomic.LoadInt64(&stats.Matched)),
		zap.Int64("failed", atomic.LoadInt64(&stats.Failed)),
	)
	return stats, submitErr
}

// Scheduler wraps robfig/cron around the Runner and enforces at most one
// concurrent run: a local flag guards this process, the Locker guards the
// deployment.
type Scheduler struct {
	cron    *cron.Cron
	runner  *Runner
	locker  Locker
	log     *zap.Logger
	spec    string
	holder  string
	running atomic.Bool
}

func New(runner *Runner, locker Locker, loc *time.Location, hour, minute int, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		runner: runner,
		locker: locker,
		log:    log,
		spec:   fmt.Sprintf("%d %d * * *", minute, hour),
		holder: uuid.NewString(),
	}
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() { s.runDaily(ctx) })
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.Info("daily matching scheduled", zap.String("spec", s.spec))
	return nil
}

// Stop shuts the cron loop down and waits for an in-flight trigger callback.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("daily matching scheduler stopped")
}

func (s *Scheduler) runDaily(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("previous matching run still in progress, skipping trigger")
		return
	}
	defer s.running.Store(false)

	if s.locker != nil {
		ok, err := s.locker.AcquireLock(ctx, runLockKey, s.holder, runLockTTL)
		if err != nil {
			s.log.Error("run lock acquisition failed", zap.Error(err))
			return
		}
		if !ok {
			s.log.Info("another instance holds the daily run lock, skipping")
			return
		}
		defer s.locker.ReleaseLock(context.Background(), runLockKey)
	}

	start := time.Now()
	s.log.Info("daily matching run started")
	if _, err := s.runner.RunOnce(ctx, start); err != nil {
		s.log.Error("daily matching run aborted", zap.Error(err))
		return
	}
	s.log.Info("daily matching run complete", zap.Duration("took", time.Since(start)))
}
