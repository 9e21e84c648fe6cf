package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-coach/internal/types"
)

// -----------------------------------------------------------------------------
// Coding Submission Methods
// -----------------------------------------------------------------------------

const codingSubmissionColumns = `id, user_id, question_id, code, language, output, passed,
	suggestions, submitted_at`

// CreateCodingSubmission stores a judged submission
func (db *DB) CreateCodingSubmission(ctx context.Context, s *types.CodingSubmission) error {
	stamp(&s.ID, &s.SubmittedAt)
	s.Suggestions = textArray(s.Suggestions)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO coding_submissions (`+codingSubmissionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.UserID, s.QuestionID, s.Code, s.Language, s.Output, s.Passed,
		s.Suggestions, s.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coding submission: %w", err)
	}
	return nil
}

// ListCodingSubmissions returns all of a user's submissions, oldest first
func (db *DB) ListCodingSubmissions(ctx context.Context, userID uuid.UUID) ([]types.CodingSubmission, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+codingSubmissionColumns+`
		 FROM coding_submissions WHERE user_id = $1 ORDER BY submitted_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding submissions: %w", err)
	}
	return scanCodingSubmissions(rows)
}

// CodingSubmissionHistory returns a user's most recent submissions, newest first
func (db *DB) CodingSubmissionHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.CodingSubmission, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+codingSubmissionColumns+`
		 FROM coding_submissions WHERE user_id = $1 ORDER BY submitted_at DESC, id DESC LIMIT $2`,
		userID, historyLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding history: %w", err)
	}
	return scanCodingSubmissions(rows)
}

// DeleteCodingSubmission removes one of the user's submissions
func (db *DB) DeleteCodingSubmission(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM coding_submissions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete coding submission: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("coding submission %s: %w", id, types.ErrNotFound)
	}
	return nil
}

func scanCodingSubmissions(rows pgx.Rows) ([]types.CodingSubmission, error) {
	defer rows.Close()

	out := []types.CodingSubmission{}
	for rows.Next() {
		var s types.CodingSubmission
		if err := rows.Scan(&s.ID, &s.UserID, &s.QuestionID, &s.Code, &s.Language, &s.Output,
			&s.Passed, &s.Suggestions, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coding submission: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coding submissions: %w", err)
	}
	return out, nil
}
