package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/interview-coach/internal/types"
)

// -----------------------------------------------------------------------------
// Voice Feedback Methods
// -----------------------------------------------------------------------------

const voiceFeedbackColumns = `id, user_id, recorded_at, emotion, pitch, energy, tempo,
	suggestions, audio_file_name, feedback`

// CreateVoiceFeedback stores a voice-analysis result. ID and Timestamp are filled in when unset.
func (db *DB) CreateVoiceFeedback(ctx context.Context, v *types.VoiceFeedback) error {
	stamp(&v.ID, &v.Timestamp)
	v.Suggestions = textArray(v.Suggestions)

	_, err := db.pool.Exec(ctx,
		`INSERT INTO voice_feedback (`+voiceFeedbackColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.UserID, v.Timestamp, v.Emotion, v.Pitch, v.Energy, v.Tempo,
		v.Suggestions, v.AudioFileName, v.Feedback,
	)
	if err != nil {
		return fmt.Errorf("failed to create voice feedback: %w", err)
	}
	return nil
}

// ListVoiceFeedback returns all of a user's voice feedback, oldest first
func (db *DB) ListVoiceFeedback(ctx context.Context, userID uuid.UUID) ([]types.VoiceFeedback, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+voiceFeedbackColumns+`
		 FROM voice_feedback WHERE user_id = $1 ORDER BY recorded_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice feedback: %w", err)
	}
	return scanVoiceFeedback(rows)
}

// VoiceFeedbackHistory returns a user's most recent voice feedback, newest first
func (db *DB) VoiceFeedbackHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.VoiceFeedback, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+voiceFeedbackColumns+`
		 FROM voice_feedback WHERE user_id = $1 ORDER BY recorded_at DESC, id DESC LIMIT $2`,
		userID, historyLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice feedback history: %w", err)
	}
	return scanVoiceFeedback(rows)
}

// DeleteVoiceFeedback removes one of the user's voice feedback entries
func (db *DB) DeleteVoiceFeedback(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM voice_feedback WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete voice feedback: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("voice feedback %s: %w", id, types.ErrNotFound)
	}
	return nil
}

func scanVoiceFeedback(rows pgx.Rows) ([]types.VoiceFeedback, error) {
	defer rows.Close()

	out := []types.VoiceFeedback{}
	for rows.Next() {
		var v types.VoiceFeedback
		if err := rows.Scan(&v.ID, &v.UserID, &v.Timestamp, &v.Emotion, &v.Pitch, &v.Energy,
			&v.Tempo, &v.Suggestions, &v.AudioFileName, &v.Feedback); err != nil {
			return nil, fmt.Errorf("failed to scan voice feedback: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voice feedback: %w", err)
	}
	return out, nil
}
