package dto

import (
	"time"

	"github.com/google/uuid"

	"fitwork/internal/domain/listing"
)

type ListingResponse struct {
	ID             uuid.UUID `json:"id"`
	CenterID       uuid.UUID `json:"center_id"`
	Title          string    `json:"title"`
	GenderTarget   string    `json:"gender_target"`
	City           string    `json:"city"`
	District       string    `json:"district"`
	WorkTimes      []string  `json:"work_times"`
	WorkTypes      []string  `json:"work_types"`
	Qualifications []string  `json:"qualifications"`
	Preferences    []string  `json:"preferences"`
	IsHiring       bool      `json:"is_hiring"`
	PostedAt       time.Time `json:"posted_at"`
}

func FromListing(l listing.Listing) ListingResponse {
	return ListingResponse{
		ID:             l.ID,
		CenterID:       l.CenterID,
		Title:          l.Title,
		GenderTarget:   string(l.GenderTarget),
		City:           l.City,
		District:       l.District,
		WorkTimes:      emptyIfNil(l.WorkTimes),
		WorkTypes:      emptyIfNil(l.WorkTypes),
		Qualifications: emptyIfNil(l.Qualifications),
		Preferences:    emptyIfNil(l.Preferences),
		IsHiring:       l.IsHiring,
		PostedAt:       l.PostedAt,
	}
}

func FromListings(ls []listing.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, FromListing(l))
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
