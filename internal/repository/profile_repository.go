package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fitwork/internal/database"
	"fitwork/internal/domain/seeker"
)

type ProfileRepository interface {
	// FindBySeekerID returns (nil, nil) when the seeker has no profile; a
	// missing profile is a skip condition, not an error.
	FindBySeekerID(ctx context.Context, seekerID uuid.UUID) (*seeker.Profile, error)
	ListSeekerIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindBySeekerID(ctx context.Context, seekerID uuid.UUID) (*seeker.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT seeker_id, gender, location, work_times, work_types, is_experienced, updated_at
		 FROM seeker_profiles
		 WHERE seeker_id = $1`,
		seekerID,
	)

	var p seeker.Profile
	err := row.Scan(&p.SeekerID, &p.Gender, &p.Location, &p.WorkTimes, &p.WorkTypes, &p.IsExperienced, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListSeekerIDs pages over every seeker that has a profile, in stable order,
// for the daily run.
func (r *PostgresProfileRepository) ListSeekerIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 500
	}
	if limit > 5000 {
		limit = 5000
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT seeker_id
		 FROM seeker_profiles
		 ORDER BY seeker_id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
