package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"fitwork/internal/domain/listing"
)

type fakeSeekers struct {
	ids []uuid.UUID
}

func (f *fakeSeekers) ListSeekerIDs(_ context.Context, limit, offset int) ([]uuid.UUID, error) {
	if offset >= len(f.ids) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.ids) {
		end = len(f.ids)
	}
	return f.ids[offset:end], nil
}

type fakeMatcher struct {
	mu      sync.Mutex
	calls   []uuid.UUID
	failFor map[uuid.UUID]error
	match   map[uuid.UUID]*listing.Listing
	block   chan struct{} // when set, every call waits until closed
}

func (f *fakeMatcher) MatchForSeeker(_ context.Context, id uuid.UUID, _ time.Time) (*listing.Listing, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()
	if err, ok := f.failFor[id]; ok {
		return nil, err
	}
	return f.match[id], nil
}

func (f *fakeMatcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestRunOnce_FailureIsolation(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	l := &listing.Listing{ID: uuid.New()}
	m := &fakeMatcher{
		failFor: map[uuid.UUID]error{ids[1]: errors.New("store timeout")},
		match:   map[uuid.UUID]*listing.Listing{ids[0]: l, ids[2]: l},
	}
	r := NewRunner(&fakeSeekers{ids: ids}, m, 2, 2, nil)

	stats, err := r.RunOnce(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("one seeker's failure must not abort the run, got %v", err)
	}
	if m.callCount() != 3 {
		t.Fatalf("expected all 3 seekers attempted, got %d", m.callCount())
	}
	if stats.Seekers != 3 || stats.Matched != 2 || stats.Failed != 1 {
		t.Fatalf("bad stats: %+v", stats)
	}
}

func TestRunOnce_EmptySeekerSet(t *testing.T) {
	r := NewRunner(&fakeSeekers{}, &fakeMatcher{}, 10, 2, nil)
	stats, err := r.RunOnce(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.Seekers != 0 {
		t.Fatalf("expected empty run, got %+v", stats)
	}
}

func TestRunDaily_NoOverlappingRuns(t *testing.T) {
	ids := []uuid.UUID{uuid.New()}
	block := make(chan struct{})
	m := &fakeMatcher{block: block}
	r := NewRunner(&fakeSeekers{ids: ids}, m, 10, 1, nil)
	s := New(r, nil, time.UTC, 19, 0, nil)

	first := make(chan struct{})
	go func() {
		defer close(first)
		s.runDaily(context.Background())
	}()

	// Wait until the first run holds the guard, then fire a second trigger.
	deadline := time.After(5 * time.Second)
	for !s.running.Load() {
		select {
		case <-deadline:
			t.Fatalf("first run never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	s.runDaily(context.Background())
	if got := m.callCount(); got != 0 {
		t.Fatalf("second trigger must be dropped while a run is in flight, matcher calls=%d", got)
	}

	close(block)
	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatalf("first run did not finish")
	}
	if m.callCount() != 1 {
		t.Fatalf("expected exactly one matcher call, got %d", m.callCount())
	}
}

type fakeLocker struct {
	allow    bool
	acquired int
	released int
}

func (f *fakeLocker) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	f.acquired++
	return f.allow, nil
}

func (f *fakeLocker) ReleaseLock(context.Context, string) { f.released++ }

func TestRunDaily_SkipsWhenAnotherInstanceHoldsLock(t *testing.T) {
	m := &fakeMatcher{}
	r := NewRunner(&fakeSeekers{ids: []uuid.UUID{uuid.New()}}, m, 10, 1, nil)
	lk := &fakeLocker{allow: false}
	s := New(r, lk, time.UTC, 19, 0, nil)

	s.runDaily(context.Background())
	if m.callCount() != 0 {
		t.Fatalf("run must not start without the lock")
	}
	if lk.acquired != 1 || lk.released != 0 {
		t.Fatalf("bad lock interaction: %+v", lk)
	}
}

func TestRunDaily_ReleasesLockAfterRun(t *testing.T) {
	m := &fakeMatcher{}
	r := NewRunner(&fakeSeekers{}, m, 10, 1, nil)
	lk := &fakeLocker{allow: true}
	s := New(r, lk, time.UTC, 19, 0, nil)

	s.runDaily(context.Background())
	if lk.acquired != 1 || lk.released != 1 {
		t.Fatalf("expected acquire and release, got %+v", lk)
	}
}
