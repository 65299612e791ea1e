package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ListApplicantIDsByJob returns the candidates that already applied to a job
func (db *DB) ListApplicantIDsByJob(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id FROM applications WHERE job_id = $1 ORDER BY created_at`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applicants: %w", err)
	}
	return ids, nil
}

// RecordApplication stores that a candidate applied to a job. Re-applying is a no-op.
func (db *DB) RecordApplication(ctx context.Context, jobID, candidateID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO applications (job_id, candidate_id) VALUES ($1, $2)
		 ON CONFLICT (job_id, candidate_id) DO NOTHING`,
		jobID, candidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to record application: %w", err)
	}
	return nil
}
