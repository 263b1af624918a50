package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/matching"
	"fitwork/internal/domain/villy"
	"fitwork/internal/notify"
	"fitwork/internal/repository"
)

var (
	ErrNoMatch       = errors.New("no suitable listing")
	ErrQuotaExceeded = errors.New("daily match quota exceeded")
	ErrInvalidInput  = errors.New("invalid input")
)

// Quota is the daily cap on manual match requests, enforced outside the
// matcher itself.
type Quota interface {
	Take(ctx context.Context, seekerID uuid.UUID) (bool, error)
	Refund(ctx context.Context, seekerID uuid.UUID)
}

type MatchUsecase interface {
	// MatchForSeeker runs the cascade for one seeker and persists the
	// outcome. (nil, nil) means no profile or no candidate: a silent skip.
	MatchForSeeker(ctx context.Context, seekerID uuid.UUID, at time.Time) (*listing.Listing, error)
	// RequestNewMatch is the user-triggered path: same cascade, but behind
	// the daily quota, and a miss surfaces as ErrNoMatch.
	RequestNewMatch(ctx context.Context, seekerID uuid.UUID) (*listing.Listing, error)
}

type Match struct {
	listings repository.ListingRepository
	profiles repository.ProfileRepository
	villies  repository.VillyRepository
	notifier notify.Notifier
	quota    Quota
	log      *zap.Logger
}

func NewMatchUsecase(
	listings repository.ListingRepository,
	profiles repository.ProfileRepository,
	villies repository.VillyRepository,
	notifier notify.Notifier,
	quota Quota,
	log *zap.Logger,
) *Match {
	if log == nil {
		log = zap.NewNop()
	}
	return &Match{
		listings: listings,
		profiles: profiles,
		villies:  villies,
		notifier: notifier,
		quota:    quota,
		log:      log,
	}
}

func (u *Match) MatchForSeeker(ctx context.Context, seekerID uuid.UUID, at time.Time) (*listing.Listing, error) {
	if seekerID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	prof, err := u.profiles.FindBySeekerID(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if prof == nil {
		// No profile: never matched, never an error. The candidate store is
		// not consulted at all.
		return nil, nil
	}

	excluded, err := u.villies.ExcludedListingIDs(ctx, seekerID, villy.ExclusionKinds)
	if err != nil {
		return nil, fmt.Errorf("load exclusion set: %w", err)
	}

	found, tier, err := matching.Match(ctx, u.listings, *prof, excluded)
	if err != nil {
		return nil, fmt.Errorf("evaluate cascade: %w", err)
	}
	if found == nil {
		return nil, nil
	}

	rec := villy.Record{
		ID:        uuid.New(),
		SeekerID:  seekerID,
		ListingID: found.ID,
		Kind:      villy.KindMatched,
		CreatedAt: at.UTC(),
	}
	if err := u.villies.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist match record: %w", err)
	}

	u.log.Info("seeker matched",
		zap.String("seeker_id", seekerID.String()),
		zap.String("listing_id", found.ID.String()),
		zap.String("tier", tier),
	)

	if u.notifier != nil {
		u.notifier.MatchCreated(ctx, rec, *found)
	}
	return found, nil
}

func (u *Match) RequestNewMatch(ctx context.Context, seekerID uuid.UUID) (*listing.Listing, error) {
	if seekerID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	if u.quota != nil {
		ok, err := u.quota.Take(ctx, seekerID)
		if err != nil {
			return nil, fmt.Errorf("check quota: %w", err)
		}
		if !ok {
			return nil, ErrQuotaExceeded
		}
	}

	found, err := u.MatchForSeeker(ctx, seekerID, time.Now())
	if err != nil {
		if u.quota != nil {
			u.quota.Refund(ctx, seekerID)
		}
		return nil, err
	}
	if found == nil {
		return nil, ErrNoMatch
	}
	return found, nil
}
