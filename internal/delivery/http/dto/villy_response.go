package dto

import (
	"time"

	"github.com/google/uuid"

	"fitwork/internal/domain/villy"
)

type VillyResponse struct {
	ID        uuid.UUID `json:"id"`
	SeekerID  uuid.UUID `json:"seeker_id"`
	ListingID uuid.UUID `json:"listing_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func FromVilly(rec villy.Record) VillyResponse {
	return VillyResponse{
		ID:        rec.ID,
		SeekerID:  rec.SeekerID,
		ListingID: rec.ListingID,
		Kind:      string(rec.Kind),
		CreatedAt: rec.CreatedAt,
	}
}

func FromVillies(recs []villy.Record) []VillyResponse {
	out := make([]VillyResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromVilly(rec))
	}
	return out
}
