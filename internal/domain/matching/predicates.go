package matching

import (
	"sort"

	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/seeker"
)

// The predicates below derive clauses from a profile. Each is pure: same
// profile in, same clause out, no dependence on run state. A nil return means
// the predicate is vacuously true for this profile and drops out of the tier.

// GenderStrict matches listings addressed to the seeker's gender and, for a
// female seeker, additionally requires the female preference tag; for a male
// seeker it requires the tag to be absent.
func GenderStrict(p seeker.Profile) Clause {
	switch p.Gender {
	case seeker.GenderMale:
		return And{
			GenderIn{listing.GenderTargetEither, listing.GenderTargetMale},
			PreferenceLacks(listing.TagFemale),
		}
	case seeker.GenderFemale:
		return And{
			GenderIn{listing.GenderTargetEither, listing.GenderTargetFemale},
			PreferenceHas(listing.TagFemale),
		}
	}
	return None{}
}

// GenderLoose drops the preference-tag requirement of GenderStrict.
func GenderLoose(p seeker.Profile) Clause {
	switch p.Gender {
	case seeker.GenderMale:
		return GenderIn{listing.GenderTargetEither, listing.GenderTargetMale}
	case seeker.GenderFemale:
		return GenderIn{listing.GenderTargetEither, listing.GenderTargetFemale}
	}
	return None{}
}

// LocationExact matches the seeker's selected (city, district) pairs, with
// the entire-city sentinel matching any district. An empty selection matches
// nothing.
func LocationExact(p seeker.Profile) Clause {
	pairs := make(LocationIn, 0, len(p.Location))
	for _, city := range sortedCities(p.Location) {
		for _, district := range p.Location[city] {
			pairs = append(pairs, CityDistrict{City: city, District: district})
		}
	}
	if len(pairs) == 0 {
		return None{}
	}
	return pairs
}

// LocationCityOnly relaxes LocationExact to city membership.
func LocationCityOnly(p seeker.Profile) Clause {
	cities := sortedCities(p.Location)
	if len(cities) == 0 {
		return None{}
	}
	return CityIn(cities)
}

// WorkTime requires overlap with the seeker's workTime selection; a seeker
// with no selection accepts any listing.
func WorkTime(p seeker.Profile) Clause {
	if len(p.WorkTimes) == 0 {
		return nil
	}
	return WorkTimeAny(p.WorkTimes)
}

// WorkType mirrors WorkTime over the workType sets.
func WorkType(p seeker.Profile) Clause {
	if len(p.WorkTypes) == 0 {
		return nil
	}
	return WorkTypeAny(p.WorkTypes)
}

// ExperienceStrict: an entry-level seeker needs the entry-level-ok
// qualification; an experienced seeker needs the experienced preference tag.
func ExperienceStrict(p seeker.Profile) Clause {
	if p.IsExperienced {
		return PreferenceHas(listing.TagExperienced)
	}
	return QualificationHas(listing.TagEntryLevelOK)
}

// ExperienceLoose only shields entry-level seekers from experienced-only
// listings; for an experienced seeker it is vacuous.
func ExperienceLoose(p seeker.Profile) Clause {
	if p.IsExperienced {
		return nil
	}
	return QualificationLacks(listing.TagExperienced)
}

func sortedCities(location map[string][]string) []string {
	cities := make([]string, 0, len(location))
	for city := range location {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}
