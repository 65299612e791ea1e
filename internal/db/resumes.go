package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

const parsedResumeColumns = `id, candidate_id, username, technical_skills, work_experience,
	education, job_titles, parsed_at`

// hasParsedDataClause keeps résumés with at least one populated JSONB array
const hasParsedDataClause = `(jsonb_array_length(technical_skills) > 0
	OR jsonb_array_length(work_experience) > 0
	OR jsonb_array_length(education) > 0
	OR jsonb_array_length(job_titles) > 0)`

func scanParsedResume(row pgx.Row) (*types.ParsedResume, error) {
	var r types.ParsedResume
	var skillsJSON, experienceJSON, educationJSON, titlesJSON []byte

	err := row.Scan(&r.ID, &r.CandidateID, &r.Username, &skillsJSON, &experienceJSON,
		&educationJSON, &titlesJSON, &r.ParsedAt)
	if err != nil {
		return nil, err
	}

	// Parse JSONB fields; malformed values leave the field empty
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &r.TechnicalSkills)
	}
	if experienceJSON != nil {
		_ = json.Unmarshal(experienceJSON, &r.WorkExperience)
	}
	if educationJSON != nil {
		_ = json.Unmarshal(educationJSON, &r.Education)
	}
	if titlesJSON != nil {
		_ = json.Unmarshal(titlesJSON, &r.JobTitles)
	}

	return &r, nil
}

// ListEligibleResumes retrieves résumés with parsed data, skipping excluded candidates.
// Order is by parse time so rankings with equal scores are stable between calls.
func (db *DB) ListEligibleResumes(ctx context.Context, exclude []uuid.UUID) ([]types.ParsedResume, error) {
	if exclude == nil {
		// NULL would make the ANY comparison unknown and drop every row
		exclude = []uuid.UUID{}
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+parsedResumeColumns+` FROM parsed_resumes
		 WHERE `+hasParsedDataClause+`
		   AND NOT (candidate_id = ANY($1))
		 ORDER BY parsed_at ASC, id ASC`,
		exclude,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.ParsedResume{}
	for rows.Next() {
		r, err := scanParsedResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return resumes, nil
}

// GetParsedResumeByCandidate retrieves the candidate's résumé
func (db *DB) GetParsedResumeByCandidate(ctx context.Context, candidateID uuid.UUID) (*types.ParsedResume, error) {
	r, err := scanParsedResume(db.pool.QueryRow(ctx,
		`SELECT `+parsedResumeColumns+` FROM parsed_resumes WHERE candidate_id = $1`,
		candidateID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// UpsertParsedResume stores a candidate's résumé, replacing any previous one wholesale
func (db *DB) UpsertParsedResume(ctx context.Context, r *types.ParsedResume) (*types.ParsedResume, error) {
	skillsJSON, err := marshalArray(r.TechnicalSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal technical skills: %w", err)
	}
	experienceJSON, err := marshalArray(r.WorkExperience)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal work experience: %w", err)
	}
	educationJSON, err := marshalArray(r.Education)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}
	titlesJSON, err := marshalArray(r.JobTitles)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job titles: %w", err)
	}

	saved, err := scanParsedResume(db.pool.QueryRow(ctx,
		`INSERT INTO parsed_resumes (candidate_id, username, technical_skills,
		                             work_experience, education, job_titles, parsed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (candidate_id) DO UPDATE SET
		     username = $2,
		     technical_skills = $3,
		     work_experience = $4,
		     education = $5,
		     job_titles = $6,
		     parsed_at = NOW()
		 RETURNING `+parsedResumeColumns,
		r.CandidateID, r.Username, skillsJSON, experienceJSON, educationJSON, titlesJSON,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert resume: %w", err)
	}
	return saved, nil
}

// DeleteParsedResume removes the candidate's résumé
func (db *DB) DeleteParsedResume(ctx context.Context, candidateID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM parsed_resumes WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// marshalArray encodes a slice as a JSON array, never as null
func marshalArray[T any](values []T) ([]byte, error) {
	if values == nil {
		values = []T{}
	}
	return json.Marshal(values)
}
