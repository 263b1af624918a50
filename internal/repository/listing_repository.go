package repository

import (
	"context"
	"strconv"

	"fitwork/internal/database"
	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/matching"
)

// candidateLimit caps one tier's candidate page. The matcher only consumes
// the newest candidate, so the cap never changes the outcome as long as rows
// arrive newest first.
const candidateLimit = 50

const listingColumns = `id, center_id, title, gender_target, city, district,
	work_times, work_types, qualifications, preferences, status, is_hiring,
	posted_at, created_at`

type ListingRepository interface {
	matching.CandidateSource
	ListHiring(ctx context.Context, limit, offset int) ([]listing.Listing, error)
}

type PostgresListingRepository struct {
	db database.DB
}

func NewPostgresListingRepository(db database.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

// FindEligible compiles the clause set and returns matching listings newest
// first, implementing matching.CandidateSource.
func (r *PostgresListingRepository) FindEligible(ctx context.Context, clauses []matching.Clause) ([]listing.Listing, error) {
	where, args, err := compileClauses(clauses)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + listingColumns + `
		 FROM listings
		 WHERE ` + where + `
		 ORDER BY posted_at DESC
		 LIMIT ` + strconv.Itoa(candidateLimit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

func (r *PostgresListingRepository) ListHiring(ctx context.Context, limit, offset int) ([]listing.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+listingColumns+`
		 FROM listings
		 WHERE is_hiring AND status = $1
		 ORDER BY posted_at DESC
		 LIMIT $2 OFFSET $3`,
		string(listing.StatusActive), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

func scanListings(rows database.Rows) ([]listing.Listing, error) {
	out := make([]listing.Listing, 0)
	for rows.Next() {
		var l listing.Listing
		if err := rows.Scan(
			&l.ID, &l.CenterID, &l.Title, &l.GenderTarget, &l.City, &l.District,
			&l.WorkTimes, &l.WorkTypes, &l.Qualifications, &l.Preferences,
			&l.Status, &l.IsHiring, &l.PostedAt, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

