package listing

import (
	"time"

	"github.com/google/uuid"
)

// GenderTarget is the audience a center addresses with a listing.
type GenderTarget string

const (
	GenderTargetUnspecified GenderTarget = "unspecified"
	GenderTargetEither      GenderTarget = "either"
	GenderTargetMale        GenderTarget = "male"
	GenderTargetFemale      GenderTarget = "female"
)

// Status replaces the Active/Expired split of earlier schemas with a single
// tagged field on one listing type.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Canonical tags used in qualification and preference sets. Matching compares
// tags with case-sensitive exact equality.
const (
	TagEntryLevelOK = "초보가능"
	TagExperienced  = "경력자"
	TagFemale       = "여성"
)

type Listing struct {
	ID             uuid.UUID
	CenterID       uuid.UUID
	Title          string
	GenderTarget   GenderTarget
	City           string
	District       string
	WorkTimes      []string
	WorkTypes      []string
	Qualifications []string
	Preferences    []string
	Status         Status
	IsHiring       bool
	PostedAt       time.Time
	CreatedAt      time.Time
}

// Eligible reports whether the listing may be proposed to a seeker at all.
func (l Listing) Eligible() bool {
	return l.IsHiring && l.Status == StatusActive
}
