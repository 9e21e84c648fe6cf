package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/types"
)

// CreateVoiceFeedback stores a voice-analysis result.
func (s *Store) CreateVoiceFeedback(ctx context.Context, v *types.VoiceFeedback) error {
	stamp(&v.ID, &v.Timestamp)
	suggestions, err := encodeList(v.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO voice_feedback (id, user_id, recorded_at, emotion, pitch, energy, tempo, suggestions, audio_file_name, feedback)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID.String(), v.UserID.String(), formatTime(v.Timestamp), v.Emotion, v.Pitch, v.Energy, v.Tempo,
		suggestions, v.AudioFileName, v.Feedback,
	)
	if err != nil {
		return fmt.Errorf("failed to create voice feedback: %w", err)
	}
	return nil
}

// ListVoiceFeedback returns all of a user's voice feedback, oldest first.
func (s *Store) ListVoiceFeedback(ctx context.Context, userID uuid.UUID) ([]types.VoiceFeedback, error) {
	return s.queryVoiceFeedback(ctx,
		`SELECT id, user_id, recorded_at, emotion, pitch, energy, tempo, suggestions, audio_file_name, feedback
		 FROM voice_feedback WHERE user_id = ? ORDER BY recorded_at ASC, id ASC`,
		userID.String())
}

// VoiceFeedbackHistory returns a user's most recent voice feedback, newest first.
func (s *Store) VoiceFeedbackHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.VoiceFeedback, error) {
	return s.queryVoiceFeedback(ctx,
		`SELECT id, user_id, recorded_at, emotion, pitch, energy, tempo, suggestions, audio_file_name, feedback
		 FROM voice_feedback WHERE user_id = ? ORDER BY recorded_at DESC, id DESC LIMIT ?`,
		userID.String(), historyLimit(limit))
}

// DeleteVoiceFeedback removes one of the user's voice feedback entries.
func (s *Store) DeleteVoiceFeedback(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteOwned(ctx, "voice_feedback", userID, id)
}

func (s *Store) queryVoiceFeedback(ctx context.Context, query string, args ...any) ([]types.VoiceFeedback, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice feedback: %w", err)
	}
	defer closeRows(rows)

	out := []types.VoiceFeedback{}
	for rows.Next() {
		var v types.VoiceFeedback
		var id, userID, at, suggestions string
		if err := rows.Scan(&id, &userID, &at, &v.Emotion, &v.Pitch, &v.Energy, &v.Tempo,
			&suggestions, &v.AudioFileName, &v.Feedback); err != nil {
			return nil, fmt.Errorf("failed to scan voice feedback: %w", err)
		}
		if err := decodeIdentity(id, userID, &v.ID, &v.UserID); err != nil {
			return nil, err
		}
		if v.Timestamp, err = parseTime(at); err != nil {
			return nil, err
		}
		if v.Suggestions, err = decodeList(suggestions); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// CreateCodingSubmission stores a judged submission.
func (s *Store) CreateCodingSubmission(ctx context.Context, c *types.CodingSubmission) error {
	stamp(&c.ID, &c.SubmittedAt)
	suggestions, err := encodeList(c.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO coding_submissions (id, user_id, question_id, code, language, output, passed, suggestions, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.UserID.String(), c.QuestionID, c.Code, c.Language, c.Output, c.Passed,
		suggestions, formatTime(c.SubmittedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create coding submission: %w", err)
	}
	return nil
}

// ListCodingSubmissions returns all of a user's submissions, oldest first.
func (s *Store) ListCodingSubmissions(ctx context.Context, userID uuid.UUID) ([]types.CodingSubmission, error) {
	return s.queryCodingSubmissions(ctx,
		`SELECT id, user_id, question_id, code, language, output, passed, suggestions, submitted_at
		 FROM coding_submissions WHERE user_id = ? ORDER BY submitted_at ASC, id ASC`,
		userID.String())
}

// CodingSubmissionHistory returns a user's most recent submissions, newest first.
func (s *Store) CodingSubmissionHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.CodingSubmission, error) {
	return s.queryCodingSubmissions(ctx,
		`SELECT id, user_id, question_id, code, language, output, passed, suggestions, submitted_at
		 FROM coding_submissions WHERE user_id = ? ORDER BY submitted_at DESC, id DESC LIMIT ?`,
		userID.String(), historyLimit(limit))
}

// DeleteCodingSubmission removes one of the user's submissions.
func (s *Store) DeleteCodingSubmission(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteOwned(ctx, "coding_submissions", userID, id)
}

func (s *Store) queryCodingSubmissions(ctx context.Context, query string, args ...any) ([]types.CodingSubmission, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding submissions: %w", err)
	}
	defer closeRows(rows)

	out := []types.CodingSubmission{}
	for rows.Next() {
		var c types.CodingSubmission
		var id, userID, at, suggestions string
		if err := rows.Scan(&id, &userID, &c.QuestionID, &c.Code, &c.Language, &c.Output, &c.Passed,
			&suggestions, &at); err != nil {
			return nil, fmt.Errorf("failed to scan coding submission: %w", err)
		}
		if err := decodeIdentity(id, userID, &c.ID, &c.UserID); err != nil {
			return nil, err
		}
		if c.SubmittedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		if c.Suggestions, err = decodeList(suggestions); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateResumeUpload stores the extracted texts of an uploaded resume.
func (s *Store) CreateResumeUpload(ctx context.Context, u *types.ResumeUpload) error {
	stamp(&u.ID, &u.UploadedAt)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resume_uploads (id, user_id, resume_text, job_desc_text, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID.String(), u.UserID.String(), u.ResumeText, u.JobDescText, formatTime(u.UploadedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create resume upload: %w", err)
	}
	return nil
}

// ListResumeUploads returns all of a user's uploads, oldest first.
func (s *Store) ListResumeUploads(ctx context.Context, userID uuid.UUID) ([]types.ResumeUpload, error) {
	return s.queryResumeUploads(ctx,
		`SELECT id, user_id, resume_text, job_desc_text, uploaded_at
		 FROM resume_uploads WHERE user_id = ? ORDER BY uploaded_at ASC, id ASC`,
		userID.String())
}

// LatestResumeUpload returns the user's most recent upload, or nil if there is none.
func (s *Store) LatestResumeUpload(ctx context.Context, userID uuid.UUID) (*types.ResumeUpload, error) {
	uploads, err := s.queryResumeUploads(ctx,
		`SELECT id, user_id, resume_text, job_desc_text, uploaded_at
		 FROM resume_uploads WHERE user_id = ? ORDER BY uploaded_at DESC, id DESC LIMIT 1`,
		userID.String())
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, nil
	}
	return &uploads[0], nil
}

func (s *Store) queryResumeUploads(ctx context.Context, query string, args ...any) ([]types.ResumeUpload, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume uploads: %w", err)
	}
	defer closeRows(rows)

	out := []types.ResumeUpload{}
	for rows.Next() {
		var u types.ResumeUpload
		var id, userID, at string
		if err := rows.Scan(&id, &userID, &u.ResumeText, &u.JobDescText, &at); err != nil {
			return nil, fmt.Errorf("failed to scan resume upload: %w", err)
		}
		if err := decodeIdentity(id, userID, &u.ID, &u.UserID); err != nil {
			return nil, err
		}
		if u.UploadedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CreateResumeAnalysis stores a match-score run.
func (s *Store) CreateResumeAnalysis(ctx context.Context, a *types.ResumeAnalysis) error {
	stamp(&a.ID, &a.AnalyzedAt)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resume_analyses (id, user_id, resume_id, match_score, analyzed_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID.String(), a.UserID.String(), a.ResumeID.String(), nullFloat(a.MatchScore), formatTime(a.AnalyzedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create resume analysis: %w", err)
	}
	return nil
}

// ListResumeAnalyses returns all of a user's analyses, oldest first.
func (s *Store) ListResumeAnalyses(ctx context.Context, userID uuid.UUID) ([]types.ResumeAnalysis, error) {
	return s.queryResumeAnalyses(ctx,
		`SELECT id, user_id, resume_id, match_score, analyzed_at
		 FROM resume_analyses WHERE user_id = ? ORDER BY analyzed_at ASC, id ASC`,
		userID.String())
}

// ResumeAnalysisHistory returns a user's most recent analyses, newest first.
func (s *Store) ResumeAnalysisHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.ResumeAnalysis, error) {
	return s.queryResumeAnalyses(ctx,
		`SELECT id, user_id, resume_id, match_score, analyzed_at
		 FROM resume_analyses WHERE user_id = ? ORDER BY analyzed_at DESC, id DESC LIMIT ?`,
		userID.String(), historyLimit(limit))
}

func (s *Store) queryResumeAnalyses(ctx context.Context, query string, args ...any) ([]types.ResumeAnalysis, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume analyses: %w", err)
	}
	defer closeRows(rows)

	out := []types.ResumeAnalysis{}
	for rows.Next() {
		var a types.ResumeAnalysis
		var id, userID, resumeID, at string
		var score sql.NullFloat64
		if err := rows.Scan(&id, &userID, &resumeID, &score, &at); err != nil {
			return nil, fmt.Errorf("failed to scan resume analysis: %w", err)
		}
		if err := decodeIdentity(id, userID, &a.ID, &a.UserID); err != nil {
			return nil, err
		}
		if a.ResumeID, err = uuid.Parse(resumeID); err != nil {
			return nil, fmt.Errorf("invalid stored resume id: %w", err)
		}
		if score.Valid {
			v := score.Float64
			a.MatchScore = &v
		}
		if a.AnalyzedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateFeedbackRecord stores a general-purpose feedback record.
func (s *Store) CreateFeedbackRecord(ctx context.Context, r *types.FeedbackRecord) error {
	stamp(&r.ID, &r.CreatedAt)
	lists := make([]string, 3)
	for i, l := range [][]string{r.MissingKeywords, r.KeywordsMatched, r.Suggestions} {
		enc, err := encodeList(l)
		if err != nil {
			return fmt.Errorf("failed to encode feedback lists: %w", err)
		}
		lists[i] = enc
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback_records (id, user_id, context, match_score, missing_keywords, sentiment, emotion, filler_words, keywords_matched, suggestions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.UserID.String(), r.Context, nullFloat(r.MatchScore), lists[0],
		nullFlex(r.Sentiment), r.Emotion, nullFlex(r.FillerWords), lists[1], lists[2], formatTime(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback record: %w", err)
	}
	return nil
}

// ListFeedbackRecords returns all of a user's feedback records, oldest first.
func (s *Store) ListFeedbackRecords(ctx context.Context, userID uuid.UUID) ([]types.FeedbackRecord, error) {
	return s.queryFeedbackRecords(ctx,
		`SELECT id, user_id, context, match_score, missing_keywords, sentiment, emotion, filler_words, keywords_matched, suggestions, created_at
		 FROM feedback_records WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID.String())
}

// FeedbackRecordHistory returns a user's most recent feedback records, newest first.
func (s *Store) FeedbackRecordHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.FeedbackRecord, error) {
	return s.queryFeedbackRecords(ctx,
		`SELECT id, user_id, context, match_score, missing_keywords, sentiment, emotion, filler_words, keywords_matched, suggestions, created_at
		 FROM feedback_records WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID.String(), historyLimit(limit))
}

func (s *Store) queryFeedbackRecords(ctx context.Context, query string, args ...any) ([]types.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback records: %w", err)
	}
	defer closeRows(rows)

	out := []types.FeedbackRecord{}
	for rows.Next() {
		var r types.FeedbackRecord
		var id, userID, missing, matched, suggestions, at string
		var score sql.NullFloat64
		var sentiment, filler sql.NullString
		if err := rows.Scan(&id, &userID, &r.Context, &score, &missing, &sentiment, &r.Emotion,
			&filler, &matched, &suggestions, &at); err != nil {
			return nil, fmt.Errorf("failed to scan feedback record: %w", err)
		}
		if err := decodeIdentity(id, userID, &r.ID, &r.UserID); err != nil {
			return nil, err
		}
		if score.Valid {
			v := score.Float64
			r.MatchScore = &v
		}
		if sentiment.Valid {
			r.Sentiment = types.FlexValue(sentiment.String)
		}
		if filler.Valid {
			r.FillerWords = types.FlexValue(filler.String)
		}
		if r.MissingKeywords, err = decodeList(missing); err != nil {
			return nil, err
		}
		if r.KeywordsMatched, err = decodeList(matched); err != nil {
			return nil, err
		}
		if r.Suggestions, err = decodeList(suggestions); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// deleteOwned removes a row by id only when it belongs to userID. Table names
// are package constants, never user input.
func (s *Store) deleteOwned(ctx context.Context, table string, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, types.ErrNotFound)
	}
	return nil
}

func decodeIdentity(id, userID string, dstID, dstUser *uuid.UUID) error {
	var err error
	if *dstID, err = uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid stored id: %w", err)
	}
	if *dstUser, err = uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid stored user id: %w", err)
	}
	return nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullFlex(v types.FlexValue) sql.NullString {
	if len(v) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(v), Valid: true}
}
