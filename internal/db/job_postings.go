package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

const jobPostingColumns = `id, business_id, title, description, techniques, experience,
	degree, field, type, status, created_at, updated_at`

func scanJobPosting(row pgx.Row) (*types.JobPosting, error) {
	var p types.JobPosting
	err := row.Scan(&p.ID, &p.BusinessID, &p.Title, &p.Description, &p.Techniques,
		&p.Experience, &p.Degree, &p.Field, &p.Type, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetJobPostingByID retrieves a job posting by its ID
func (db *DB) GetJobPostingByID(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	p, err := scanJobPosting(db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`,
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return p, nil
}

// ListOpenJobPostingsByBusiness retrieves the business's postings that are not closed,
// newest first
func (db *DB) ListOpenJobPostingsByBusiness(ctx context.Context, businessID uuid.UUID) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings
		 WHERE business_id = $1 AND status <> $2
		 ORDER BY created_at DESC`,
		businessID, types.JobStatusClosed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	postings := []types.JobPosting{}
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, nil
}

// UpsertJobPosting creates a posting, or replaces it when p.ID already exists.
// A nil ID gets a new one.
func (db *DB) UpsertJobPosting(ctx context.Context, p *types.JobPosting) (*types.JobPosting, error) {
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	status := p.Status
	if status == "" {
		status = types.JobStatusOpen
	}

	saved, err := scanJobPosting(db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (id, business_id, title, description, techniques,
		                           experience, degree, field, type, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		     business_id = $2,
		     title = $3,
		     description = $4,
		     techniques = $5,
		     experience = $6,
		     degree = $7,
		     field = $8,
		     type = $9,
		     status = $10,
		     updated_at = NOW()
		 RETURNING `+jobPostingColumns,
		id, p.BusinessID, p.Title, p.Description, p.Techniques,
		p.Experience, p.Degree, p.Field, p.Type, status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job posting: %w", err)
	}
	return saved, nil
}

// CloseJobPosting marks a posting closed
func (db *DB) CloseJobPosting(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_postings SET status = $1, updated_at = NOW() WHERE id = $2`,
		types.JobStatusClosed, id,
	)
	if err != nil {
		return fmt.Errorf("failed to close job posting: %w", err)
	}
	return nil
}
