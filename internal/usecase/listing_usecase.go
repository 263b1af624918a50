package usecase

import (
	"context"
	"fmt"

	"fitwork/internal/domain/listing"
	"fitwork/internal/repository"
)

type ListingUsecase interface {
	ListHiring(ctx context.Context, limit, offset int) ([]listing.Listing, error)
}

type Listing struct {
	listings repository.ListingRepository
}

func NewListingUsecase(listings repository.ListingRepository) *Listing {
	return &Listing{listings: listings}
}

func (u *Listing) ListHiring(ctx context.Context, limit, offset int) ([]listing.Listing, error) {
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	out, err := u.listings.ListHiring(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list hiring listings: %w", err)
	}
	return out, nil
}
