// Package matching implements the cascade that proposes at most one listing
// to a seeker: typed filter clauses, profile-derived predicates, and the
// ordered tier evaluation over a candidate source.
package matching

import (
	"github.com/google/uuid"

	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/seeker"
)

// Clause is one boolean filter over a listing. Clauses are plain data so a
// store adapter can compile the same set to its own query language; Eval is
// the in-memory reference semantics.
type Clause interface {
	Eval(l listing.Listing) bool
}

// And is the conjunction of its elements. Nil elements are vacuously true,
// which is how optional predicates (e.g. a seeker with no workTime
// preference) drop out of a tier.
type And []Clause

func (a And) Eval(l listing.Listing) bool {
	for _, c := range a {
		if c == nil {
			continue
		}
		if !c.Eval(l) {
			return false
		}
	}
	return true
}

// None matches no listing. Predicates degrade to None on ill-formed profile
// data (empty location map, unknown gender) so a bad profile yields "no
// match" instead of matching everything or panicking.
type None struct{}

func (None) Eval(listing.Listing) bool { return false }

type GenderIn []listing.GenderTarget

func (g GenderIn) Eval(l listing.Listing) bool {
	for _, t := range g {
		if l.GenderTarget == t {
			return true
		}
	}
	return false
}

type PreferenceHas string

func (p PreferenceHas) Eval(l listing.Listing) bool {
	return hasTag(l.Preferences, string(p))
}

type PreferenceLacks string

func (p PreferenceLacks) Eval(l listing.Listing) bool {
	return !hasTag(l.Preferences, string(p))
}

type QualificationHas string

func (q QualificationHas) Eval(l listing.Listing) bool {
	return hasTag(l.Qualifications, string(q))
}

type QualificationLacks string

func (q QualificationLacks) Eval(l listing.Listing) bool {
	return !hasTag(l.Qualifications, string(q))
}

// CityDistrict is one disjunct of a location selection. District may be the
// entire-city sentinel.
type CityDistrict struct {
	City     string
	District string
}

type LocationIn []CityDistrict

func (loc LocationIn) Eval(l listing.Listing) bool {
	for _, cd := range loc {
		if cd.City != l.City {
			continue
		}
		if cd.District == seeker.DistrictEntireCity || cd.District == l.District {
			return true
		}
	}
	return false
}

type CityIn []string

func (c CityIn) Eval(l listing.Listing) bool {
	for _, city := range c {
		if l.City == city {
			return true
		}
	}
	return false
}

type WorkTimeAny []string

func (w WorkTimeAny) Eval(l listing.Listing) bool {
	return overlaps(l.WorkTimes, w)
}

type WorkTypeAny []string

func (w WorkTypeAny) Eval(l listing.Listing) bool {
	return overlaps(l.WorkTypes, w)
}

// Hiring is conjoined to every tier: only active, still-hiring listings are
// ever proposed.
type Hiring struct{}

func (Hiring) Eval(l listing.Listing) bool { return l.Eligible() }

// NotIn excludes listings already linked to the seeker.
type NotIn map[uuid.UUID]struct{}

func (n NotIn) Eval(l listing.Listing) bool {
	_, found := n[l.ID]
	return !found
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
