// Package ingestion imports and exports batches of practice events.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/progress"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
)

// EventWriter persists single events.
type EventWriter interface {
	CreateVoiceFeedback(ctx context.Context, v *types.VoiceFeedback) error
	CreateCodingSubmission(ctx context.Context, s *types.CodingSubmission) error
	CreateResumeUpload(ctx context.Context, u *types.ResumeUpload) error
	CreateResumeAnalysis(ctx context.Context, a *types.ResumeAnalysis) error
	CreateFeedbackRecord(ctx context.Context, r *types.FeedbackRecord) error
}

// ImportResult counts the events written per collection.
type ImportResult struct {
	UserID            uuid.UUID `json:"user_id"`
	VoiceFeedback     int       `json:"voice_feedback"`
	CodingSubmissions int       `json:"coding_submissions"`
	ResumeUploads     int       `json:"resume_uploads"`
	ResumeAnalyses    int       `json:"resume_analyses"`
	FeedbackRecords   int       `json:"feedback_records"`
}

// Total returns the number of events written.
func (r *ImportResult) Total() int {
	return r.VoiceFeedback + r.CodingSubmissions + r.ResumeUploads + r.ResumeAnalyses + r.FeedbackRecords
}

// ParseBundle validates raw JSON against the event bundle schema and decodes it.
// Every event is assigned the bundle's user ID.
func ParseBundle(data []byte) (*types.EventBundle, error) {
	if err := schemas.ValidateEventBundle(data); err != nil {
		return nil, err
	}

	var bundle types.EventBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode event bundle: %w", err)
	}

	for i := range bundle.VoiceFeedback {
		bundle.VoiceFeedback[i].UserID = bundle.UserID
	}
	for i := range bundle.CodingSubmissions {
		bundle.CodingSubmissions[i].UserID = bundle.UserID
	}
	for i := range bundle.ResumeUploads {
		bundle.ResumeUploads[i].UserID = bundle.UserID
	}
	for i := range bundle.ResumeAnalyses {
		bundle.ResumeAnalyses[i].UserID = bundle.UserID
	}
	for i := range bundle.FeedbackRecords {
		bundle.FeedbackRecords[i].UserID = bundle.UserID
	}
	return &bundle, nil
}

// Import writes every event of the bundle. Writing stops at the first failure;
// the returned result counts what was written before it.
func Import(ctx context.Context, w EventWriter, bundle *types.EventBundle) (*ImportResult, error) {
	res := &ImportResult{UserID: bundle.UserID}

	for i := range bundle.VoiceFeedback {
		if err := w.CreateVoiceFeedback(ctx, &bundle.VoiceFeedback[i]); err != nil {
			return res, fmt.Errorf("failed to import voice feedback %d: %w", i, err)
		}
		res.VoiceFeedback++
	}
	for i := range bundle.CodingSubmissions {
		if err := w.CreateCodingSubmission(ctx, &bundle.CodingSubmissions[i]); err != nil {
			return res, fmt.Errorf("failed to import coding submission %d: %w", i, err)
		}
		res.CodingSubmissions++
	}
	for i := range bundle.ResumeUploads {
		if err := w.CreateResumeUpload(ctx, &bundle.ResumeUploads[i]); err != nil {
			return res, fmt.Errorf("failed to import resume upload %d: %w", i, err)
		}
		res.ResumeUploads++
	}
	for i := range bundle.ResumeAnalyses {
		if err := w.CreateResumeAnalysis(ctx, &bundle.ResumeAnalyses[i]); err != nil {
			return res, fmt.Errorf("failed to import resume analysis %d: %w", i, err)
		}
		res.ResumeAnalyses++
	}
	for i := range bundle.FeedbackRecords {
		if err := w.CreateFeedbackRecord(ctx, &bundle.FeedbackRecords[i]); err != nil {
			return res, fmt.Errorf("failed to import feedback record %d: %w", i, err)
		}
		res.FeedbackRecords++
	}
	return res, nil
}

// Export reads all of a user's events into a bundle.
func Export(ctx context.Context, src progress.EventSource, userID uuid.UUID) (*types.EventBundle, error) {
	bundle := &types.EventBundle{UserID: userID}
	var err error

	if bundle.VoiceFeedback, err = src.ListVoiceFeedback(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to export voice feedback: %w", err)
	}
	if bundle.CodingSubmissions, err = src.ListCodingSubmissions(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to export coding submissions: %w", err)
	}
	if bundle.ResumeUploads, err = src.ListResumeUploads(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to export resume uploads: %w", err)
	}
	if bundle.ResumeAnalyses, err = src.ListResumeAnalyses(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to export resume analyses: %w", err)
	}
	if bundle.FeedbackRecords, err = src.ListFeedbackRecords(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to export feedback records: %w", err)
	}
	return bundle, nil
}
