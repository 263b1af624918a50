package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/matching"
	"fitwork/internal/domain/seeker"
	"fitwork/internal/domain/villy"
)

type mockListingRepo struct {
	listings []listing.Listing
	calls    int
	err      error
}

func (m *mockListingRepo) FindEligible(_ context.Context, clauses []matching.Clause) ([]listing.Listing, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]listing.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		if (matching.And(clauses)).Eval(l) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out, nil
}

func (m *mockListingRepo) ListHiring(context.Context, int, int) ([]listing.Listing, error) {
	return m.listings, nil
}

type mockProfileRepo struct {
	profiles map[uuid.UUID]*seeker.Profile
	err      error
}

func (m *mockProfileRepo) FindBySeekerID(_ context.Context, id uuid.UUID) (*seeker.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profiles[id], nil
}

func (m *mockProfileRepo) ListSeekerIDs(context.Context, int, int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(m.profiles))
	for id := range m.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

type mockVillyRepo struct {
	records   []villy.Record
	insertErr error
}

func (m *mockVillyRepo) Insert(_ context.Context, rec villy.Record) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockVillyRepo) ExcludedListingIDs(_ context.Context, seekerID uuid.UUID, kinds []villy.Kind) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{})
	for _, rec := range m.records {
		if rec.SeekerID != seekerID {
			continue
		}
		for _, k := range kinds {
			if rec.Kind == k {
				out[rec.ListingID] = struct{}{}
			}
		}
	}
	return out, nil
}

func (m *mockVillyRepo) ListBySeeker(_ context.Context, seekerID uuid.UUID, _, _ int) ([]villy.Record, error) {
	out := make([]villy.Record, 0)
	for _, rec := range m.records {
		if rec.SeekerID == seekerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type mockQuota struct {
	allow   bool
	takes   int
	refunds int
}

func (m *mockQuota) Take(context.Context, uuid.UUID) (bool, error) {
	m.takes++
	return m.allow, nil
}

func (m *mockQuota) Refund(context.Context, uuid.UUID) { m.refunds++ }

func eligibleListing() listing.Listing {
	return listing.Listing{
		ID:             uuid.New(),
		CenterID:       uuid.New(),
		Title:          "헬스 트레이너",
		GenderTarget:   listing.GenderTargetEither,
		City:           "서울",
		District:       "강동구",
		WorkTimes:      []string{"오후"},
		WorkTypes:      []string{"PT"},
		Qualifications: []string{listing.TagEntryLevelOK},
		Status:         listing.StatusActive,
		IsHiring:       true,
		PostedAt:       time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
}

func maleEntryProfile(id uuid.UUID) *seeker.Profile {
	return &seeker.Profile{
		SeekerID: id,
		Gender:   seeker.GenderMale,
		Location: map[string][]string{"서울": {"강동구"}},
	}
}

func TestMatchForSeeker_NoProfileSkipsWithoutStoreQuery(t *testing.T) {
	seekerID := uuid.New()
	listings := &mockListingRepo{listings: []listing.Listing{eligibleListing()}}
	uc := NewMatchUsecase(listings, &mockProfileRepo{profiles: map[uuid.UUID]*seeker.Profile{}}, &mockVillyRepo{}, nil, nil, nil)

	got, err := uc.MatchForSeeker(context.Background(), seekerID, time.Now())
	if err != nil {
		t.Fatalf("missing profile must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no match, got %v", got.ID)
	}
	if listings.calls != 0 {
		t.Fatalf("candidate store must not be queried without a profile, got %d calls", listings.calls)
	}
}

func TestMatchForSeeker_PersistsRecordAndNotifies(t *testing.T) {
	seekerID := uuid.New()
	l := eligibleListing()
	villies := &mockVillyRepo{}
	notified := 0
	uc := NewMatchUsecase(
		&mockListingRepo{listings: []listing.Listing{l}},
		&mockProfileRepo{profiles: map[uuid.UUID]*seeker.Profile{seekerID: maleEntryProfile(seekerID)}},
		villies,
		notifierFunc(func(rec villy.Record, got listing.Listing) {
			notified++
			if got.ID != l.ID || rec.Kind != villy.KindMatched {
				t.Fatalf("unexpected hand-off: %v %v", got.ID, rec.Kind)
			}
		}),
		nil, nil,
	)

	at := time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC)
	got, err := uc.MatchForSeeker(context.Background(), seekerID, at)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || got.ID != l.ID {
		t.Fatalf("expected %v, got %v", l.ID, got)
	}
	if len(villies.records) != 1 {
		t.Fatalf("expected one record, got %d", len(villies.records))
	}
	rec := villies.records[0]
	if rec.SeekerID != seekerID || rec.ListingID != l.ID || rec.Kind != villy.KindMatched || !rec.CreatedAt.Equal(at) {
		t.Fatalf("bad record: %+v", rec)
	}
	if notified != 1 {
		t.Fatalf("expected one notification hand-off, got %d", notified)
	}
}

func TestMatchForSeeker_ExistingRecordExcludesListing(t *testing.T) {
	seekerID := uuid.New()
	l := eligibleListing()
	villies := &mockVillyRepo{records: []villy.Record{{
		ID: uuid.New(), SeekerID: seekerID, ListingID: l.ID, Kind: villy.KindMatched, CreatedAt: time.Now(),
	}}}
	uc := NewMatchUsecase(
		&mockListingRepo{listings: []listing.Listing{l}},
		&mockProfileRepo{profiles: map[uuid.UUID]*seeker.Profile{seekerID: maleEntryProfile(seekerID)}},
		villies, nil, nil, nil,
	)

	got, err := uc.MatchForSeeker(context.Background(), seekerID, time.Now())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != nil {
		t.Fatalf("previously matched listing must not be proposed again")
	}
	if len(villies.records) != 1 {
		t.Fatalf("no new record expected, got %d", len(villies.records))
	}
}

func TestRequestNewMatch_QuotaExceeded(t *testing.T) {
	seekerID := uuid.New()
	q := &mockQuota{allow: false}
	uc := NewMatchUsecase(
		&mockListingRepo{listings: []listing.Listing{eligibleListing()}},
		&mockProfileRepo{profiles: map[uuid.UUID]*seeker.Profile{seekerID: maleEntryProfile(seekerID)}},
		&mockVillyRepo{}, nil, q, nil,
	)

	_, err := uc.RequestNewMatch(context.Background(), seekerID)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if q.takes != 1 {
		t.Fatalf("expected one quota take, got %d", q.takes)
	}
}

func TestRequestNewMatch_NoCandidateIsErrNoMatch(t *testing.T) {
	seekerID := uuid.New()
	q := &mockQuota{allow: true}
	uc := NewMatchUsecase(
		&mockListingRepo{},
		&mockProfileRepo{profiles: map[uuid.UUID]*seeker.Profile{seekerID: maleEntryProfile(seekerID)}},
		&mockVillyRepo{}, nil, q, nil,
	)

	_, err := uc.RequestNewMatch(context.Background(), seekerID)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if q.refunds != 0 {
		t.Fatalf("an honest miss consumes quota, got %d refunds", q.refunds)
	}
}

func TestRequestNewMatch_StoreFailureRefundsQuota(t *testing.T) {
	seekerID := uuid.New()
	q := &mockQuota{allow: true}
	uc := NewMatchUsecase(
		&mockListingRepo{err: errors.New("connection refused")},
		&mockProfileRepo{profiles: map[uuid.UUID]*seeker.Profile{seekerID: maleEntryProfile(seekerID)}},
		&mockVillyRepo{}, nil, q, nil,
	)

	_, err := uc.RequestNewMatch(context.Background(), seekerID)
	if err == nil || errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected a transport error, got %v", err)
	}
	if q.refunds != 1 {
		t.Fatalf("expected the failed request to refund quota, got %d", q.refunds)
	}
}

type notifierFunc func(rec villy.Record, l listing.Listing)

func (f notifierFunc) MatchCreated(_ context.Context, rec villy.Record, l listing.Listing) {
	f(rec, l)
}
