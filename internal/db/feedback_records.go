package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-coach/internal/types"
)

// -----------------------------------------------------------------------------
// Feedback Record Methods
// -----------------------------------------------------------------------------

const feedbackRecordColumns = `id, user_id, context, match_score, missing_keywords, sentiment,
	emotion, filler_words, keywords_matched, suggestions, created_at`

// CreateFeedbackRecord stores a general-purpose feedback record.
// Sentiment and filler words are kept as JSONB so both numbers and labels survive.
func (db *DB) CreateFeedbackRecord(ctx context.Context, r *types.FeedbackRecord) error {
	stamp(&r.ID, &r.CreatedAt)
	r.MissingKeywords = textArray(r.MissingKeywords)
	r.KeywordsMatched = textArray(r.KeywordsMatched)
	r.Suggestions = textArray(r.Suggestions)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO feedback_records (`+feedbackRecordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.UserID, r.Context, r.MatchScore, r.MissingKeywords,
		jsonValue(r.Sentiment), r.Emotion, jsonValue(r.FillerWords),
		r.KeywordsMatched, r.Suggestions, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback record: %w", err)
	}
	return nil
}

// ListFeedbackRecords returns all of a user's feedback records, oldest first
func (db *DB) ListFeedbackRecords(ctx context.Context, userID uuid.UUID) ([]types.FeedbackRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+feedbackRecordColumns+`
		 FROM feedback_records WHERE user_id = $1 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback records: %w", err)
	}
	return scanFeedbackRecords(rows)
}

// FeedbackRecordHistory returns a user's most recent feedback records, newest first
func (db *DB) FeedbackRecordHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.FeedbackRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+feedbackRecordColumns+`
		 FROM feedback_records WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, historyLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback history: %w", err)
	}
	return scanFeedbackRecords(rows)
}

func scanFeedbackRecords(rows pgx.Rows) ([]types.FeedbackRecord, error) {
	defer rows.Close()

	out := []types.FeedbackRecord{}
	for rows.Next() {
		var r types.FeedbackRecord
		var sentiment, filler []byte
		if err := rows.Scan(&r.ID, &r.UserID, &r.Context, &r.MatchScore, &r.MissingKeywords,
			&sentiment, &r.Emotion, &filler, &r.KeywordsMatched, &r.Suggestions, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback record: %w", err)
		}
		r.Sentiment = types.FlexValue(sentiment)
		r.FillerWords = types.FlexValue(filler)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback records: %w", err)
	}
	return out, nil
}
