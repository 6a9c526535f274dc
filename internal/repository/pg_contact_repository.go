package repository

import (
	"context"
	"time"

	"github.com/ismobla/portfolio-api/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository defines the persistence interface for contact submissions.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// WithinRateLimit reports whether the email+ipHash pair has made fewer
	// than max submissions inside the trailing window. The check and the
	// subsequent Save are separate statements, so the limit is best effort
	// under concurrent requests from the same pair.
	WithinRateLimit(ctx context.Context, email, ipHash string, window time.Duration, max int) (bool, error)

	// Save inserts a new submission and populates sub.ID and sub.CreatedAt.
	Save(ctx context.Context, sub *model.ContactSubmission) error

	// List returns submissions for the admin view, newest first.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// WithinRateLimit counts submissions for the email+ipHash pair newer than
// the window cutoff. Served by the (email, ip_hash, created_at) index.
func (r *PgContactRepository) WithinRateLimit(ctx context.Context, email, ipHash string, window time.Duration, max int) (bool, error) {
	cutoff := time.Now().UTC().Add(-window)

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM contacts
		 WHERE email = $1 AND ip_hash = $2 AND created_at > $3`,
		email, ipHash, cutoff,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count < max, nil
}

// Save inserts a new contacts row and populates sub.ID and sub.CreatedAt
// from the database RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, sub *model.ContactSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (email, message, lang, ip_hash)
		 VALUES ($1, NULLIF($2, ''), $3, $4)
		 RETURNING id, created_at`,
		sub.Email, sub.Message, sub.Lang, sub.IPHash,
	).Scan(&sub.ID, &sub.CreatedAt)
}

// List returns submissions filtered by lang and paginated by limit/offset.
// Lang "" returns all submissions.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactSubmission, error) {
	query := `SELECT id, email, COALESCE(message, ''), lang, ip_hash, created_at
	          FROM contacts
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`
	args := []any{opts.Limit, opts.Offset}

	if opts.Lang != "" {
		query = `SELECT id, email, COALESCE(message, ''), lang, ip_hash, created_at
		         FROM contacts
		         WHERE lang = $1
		         ORDER BY created_at DESC
		         LIMIT $2 OFFSET $3`
		args = []any{opts.Lang, opts.Limit, opts.Offset}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.ContactSubmission
	for rows.Next() {
		var s model.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Email, &s.Message, &s.Lang, &s.IPHash, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}
