package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitwork/internal/database"
	"fitwork/internal/domain/villy"
)

type VillyRepository interface {
	// Insert appends one record. Records are never updated or deleted here.
	Insert(ctx context.Context, rec villy.Record) error
	// ExcludedListingIDs returns the listing ids linked to the seeker via
	// records of the given kinds.
	ExcludedListingIDs(ctx context.Context, seekerID uuid.UUID, kinds []villy.Kind) (map[uuid.UUID]struct{}, error)
	ListBySeeker(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]villy.Record, error)
}

type PostgresVillyRepository struct {
	db database.DB
}

func NewPostgresVillyRepository(db database.DB) *PostgresVillyRepository {
	return &PostgresVillyRepository{db: db}
}

func (r *PostgresVillyRepository) Insert(ctx context.Context, rec villy.Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO villys (id, seeker_id, listing_id, kind, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.SeekerID, rec.ListingID, string(rec.Kind), rec.CreatedAt,
	)
	return err
}

func (r *PostgresVillyRepository) ExcludedListingIDs(ctx context.Context, seekerID uuid.UUID, kinds []villy.Kind) (map[uuid.UUID]struct{}, error) {
	ks := make([]string, 0, len(kinds))
	for _, k := range kinds {
		ks = append(ks, string(k))
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT listing_id
		 FROM villys
		 WHERE seeker_id = $1 AND kind = ANY($2)`,
		seekerID, ks,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresVillyRepository) ListBySeeker(ctx context.Context, seekerID uuid.UUID, limit, offset int) ([]villy.Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, seeker_id, listing_id, kind, created_at
		 FROM villys
		 WHERE seeker_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		seekerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]villy.Record, 0, limit)
	for rows.Next() {
		var rec villy.Record
		if err := rows.Scan(&rec.ID, &rec.SeekerID, &rec.ListingID, &rec.Kind, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
