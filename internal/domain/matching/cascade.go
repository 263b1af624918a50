package matching

import (
	"context"

	"github.com/google/uuid"

	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/seeker"
)

// Tier is one stage of the cascade: a named conjunction of profile-derived
// clauses. Lower tiers encode stricter, more desirable matches.
type Tier struct {
	Name    string
	Clauses []Clause
}

// Tiers builds the five-stage cascade for a profile. Order is a correctness
// requirement: evaluation walks the slice front to back and stops at the
// first tier with a result.
func Tiers(p seeker.Profile) []Tier {
	return []Tier{
		{
			Name:    "strict",
			Clauses: []Clause{GenderStrict(p), LocationExact(p), WorkTime(p), WorkType(p), ExperienceStrict(p)},
		},
		{
			Name:    "gender_relaxed",
			Clauses: []Clause{GenderLoose(p), LocationExact(p), WorkTime(p), WorkType(p), ExperienceStrict(p)},
		},
		{
			Name:    "experience_relaxed",
			Clauses: []Clause{GenderLoose(p), LocationExact(p), WorkTime(p), WorkType(p), ExperienceLoose(p)},
		},
		{
			Name:    "worktime_relaxed",
			Clauses: []Clause{GenderLoose(p), LocationExact(p), WorkType(p), ExperienceLoose(p)},
		},
		{
			Name:    "city_wide",
			Clauses: []Clause{GenderLoose(p), LocationCityOnly(p), WorkType(p), ExperienceLoose(p)},
		},
	}
}

// CandidateSource answers one clause set with the listings satisfying it,
// newest first. Implementations must treat the underlying data as a read-only
// snapshot for the duration of a call.
type CandidateSource interface {
	FindEligible(ctx context.Context, clauses []Clause) ([]listing.Listing, error)
}

// Match evaluates the cascade for one profile and returns the winning listing
// with the name of the tier that produced it, or nil when no tier yields a
// candidate. Pure with respect to (profile, source snapshot, excluded); safe
// to call concurrently for different seekers.
func Match(ctx context.Context, src CandidateSource, p seeker.Profile, excluded map[uuid.UUID]struct{}) (*listing.Listing, string, error) {
	for _, tier := range Tiers(p) {
		clauses := make([]Clause, 0, len(tier.Clauses)+2)
		clauses = append(clauses, tier.Clauses...)
		clauses = append(clauses, Hiring{}, NotIn(excluded))

		candidates, err := src.FindEligible(ctx, clauses)
		if err != nil {
			return nil, "", err
		}
		if len(candidates) == 0 {
			continue
		}

		best := newest(candidates)
		return &best, tier.Name, nil
	}
	return nil, "", nil
}

// newest picks the candidate with the latest PostedAt, keeping the source's
// order on exact ties. Sources return newest-first already; re-scanning keeps
// the recency rule independent of source ordering.
func newest(candidates []listing.Listing) listing.Listing {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.PostedAt.After(best.PostedAt) {
			best = c
		}
	}
	return best
}
