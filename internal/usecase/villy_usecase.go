package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fitwork/internal/domain/villy"
	"fitwork/internal/repository"
)

type VillyUsecase interface {
	History(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]villy.Record, error)
}

type Villy struct {
	villies repository.VillyRepository
}

func NewVillyUsecase(villies repository.VillyRepository) *Villy {
	return &Villy{villies: villies}
}

func (u *Villy) History(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]villy.Record, error) {
	if seekerID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	out, err := u.villies.ListBySeeker(ctx, seekerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list villy history: %w", err)
	}
	return out, nil
}
