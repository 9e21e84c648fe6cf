package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-coach/internal/types"
)

// -----------------------------------------------------------------------------
// Resume Upload Methods
// -----------------------------------------------------------------------------

// CreateResumeUpload stores the extracted texts of an uploaded resume
func (db *DB) CreateResumeUpload(ctx context.Context, u *types.ResumeUpload) error {
	stamp(&u.ID, &u.UploadedAt)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_uploads (id, user_id, resume_text, job_desc_text, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.UserID, u.ResumeText, u.JobDescText, u.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume upload: %w", err)
	}
	return nil
}

// ListResumeUploads returns all of a user's uploads, oldest first
func (db *DB) ListResumeUploads(ctx context.Context, userID uuid.UUID) ([]types.ResumeUpload, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, resume_text, job_desc_text, uploaded_at
		 FROM resume_uploads WHERE user_id = $1 ORDER BY uploaded_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume uploads: %w", err)
	}
	defer rows.Close()

	out := []types.ResumeUpload{}
	for rows.Next() {
		var u types.ResumeUpload
		if err := rows.Scan(&u.ID, &u.UserID, &u.ResumeText, &u.JobDescText, &u.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume upload: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resume uploads: %w", err)
	}
	return out, nil
}

// LatestResumeUpload returns the user's most recent upload, or nil if there is none
func (db *DB) LatestResumeUpload(ctx context.Context, userID uuid.UUID) (*types.ResumeUpload, error) {
	var u types.ResumeUpload
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, resume_text, job_desc_text, uploaded_at
		 FROM resume_uploads WHERE user_id = $1 ORDER BY uploaded_at DESC, id DESC LIMIT 1`,
		userID,
	).Scan(&u.ID, &u.UserID, &u.ResumeText, &u.JobDescText, &u.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest resume upload: %w", err)
	}
	return &u, nil
}

// -----------------------------------------------------------------------------
// Resume Analysis Methods
// -----------------------------------------------------------------------------

// CreateResumeAnalysis stores a match-score run
func (db *DB) CreateResumeAnalysis(ctx context.Context, a *types.ResumeAnalysis) error {
	stamp(&a.ID, &a.AnalyzedAt)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_analyses (id, user_id, resume_id, match_score, analyzed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.ResumeID, a.MatchScore, a.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resume analysis: %w", err)
	}
	return nil
}

// ListResumeAnalyses returns all of a user's analyses, oldest first
func (db *DB) ListResumeAnalyses(ctx context.Context, userID uuid.UUID) ([]types.ResumeAnalysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, resume_id, match_score, analyzed_at
		 FROM resume_analyses WHERE user_id = $1 ORDER BY analyzed_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume analyses: %w", err)
	}
	return scanResumeAnalyses(rows)
}

// ResumeAnalysisHistory returns a user's most recent analyses, newest first
func (db *DB) ResumeAnalysisHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.ResumeAnalysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, resume_id, match_score, analyzed_at
		 FROM resume_analyses WHERE user_id = $1 ORDER BY analyzed_at DESC, id DESC LIMIT $2`,
		userID, historyLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume analysis history: %w", err)
	}
	return scanResumeAnalyses(rows)
}

func scanResumeAnalyses(rows pgx.Rows) ([]types.ResumeAnalysis, error) {
	defer rows.Close()

	out := []types.ResumeAnalysis{}
	for rows.Next() {
		var a types.ResumeAnalysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.ResumeID, &a.MatchScore, &a.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume analysis: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resume analyses: %w", err)
	}
	return out, nil
}
