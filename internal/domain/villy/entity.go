package villy

import (
	"time"

	"github.com/google/uuid"
)

// Kind records how a seeker/listing link arose.
type Kind string

const (
	KindMatched           Kind = "matched"
	KindApplied           Kind = "applied"
	KindInterviewProposed Kind = "interview_proposed"
)

// ExclusionKinds are the record kinds that keep a listing from being
// proposed to the same seeker again.
var ExclusionKinds = []Kind{KindMatched, KindApplied}

// Record is an append-only link between a seeker and a listing. Records are
// never mutated; deletion policy belongs to the surrounding system.
type Record struct {
	ID        uuid.UUID
	SeekerID  uuid.UUID
	ListingID uuid.UUID
	Kind      Kind
	CreatedAt time.Time
}
