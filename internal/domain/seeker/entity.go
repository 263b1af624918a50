package seeker

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// DistrictEntireCity is the sentinel district stored in a profile location
// selection meaning "any district within this city".
const DistrictEntireCity = "시전체"

// Profile is a seeker's resume as far as matching is concerned. A user
// account has at most one profile; a seeker without one is never matched.
type Profile struct {
	SeekerID      uuid.UUID
	Gender        Gender
	Location      map[string][]string // city -> districts, DistrictEntireCity allowed
	WorkTimes     []string            // empty = no constraint
	WorkTypes     []string            // empty = no constraint
	IsExperienced bool
	UpdatedAt     time.Time
}
