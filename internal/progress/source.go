// Package progress aggregates a user's practice events into trends, growth
// metrics and a recent-activity feed.
package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/types"
	"golang.org/x/sync/errgroup"
)

// ErrStorageUnavailable is returned when any event collection cannot be read.
// No partial summary is produced in that case.
var ErrStorageUnavailable = errors.New("event storage unavailable")

// EventSource reads one user's events. Every method returns events ordered by
// their timestamp ascending.
type EventSource interface {
	ListVoiceFeedback(ctx context.Context, userID uuid.UUID) ([]types.VoiceFeedback, error)
	ListCodingSubmissions(ctx context.Context, userID uuid.UUID) ([]types.CodingSubmission, error)
	ListResumeUploads(ctx context.Context, userID uuid.UUID) ([]types.ResumeUpload, error)
	ListResumeAnalyses(ctx context.Context, userID uuid.UUID) ([]types.ResumeAnalysis, error)
	ListFeedbackRecords(ctx context.Context, userID uuid.UUID) ([]types.FeedbackRecord, error)
}

// events is everything read for one summary.
type events struct {
	voice    []types.VoiceFeedback
	coding   []types.CodingSubmission
	uploads  []types.ResumeUpload
	analyses []types.ResumeAnalysis
	records  []types.FeedbackRecord
}

// readAll issues the five reads concurrently. Each goroutine owns one field of
// the result, so no locking is needed.
func readAll(ctx context.Context, src EventSource, userID uuid.UUID) (*events, error) {
	var ev events
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ev.voice, err = src.ListVoiceFeedback(gctx, userID)
		return wrapRead("voice feedback", err)
	})
	g.Go(func() (err error) {
		ev.coding, err = src.ListCodingSubmissions(gctx, userID)
		return wrapRead("coding submissions", err)
	})
	g.Go(func() (err error) {
		ev.uploads, err = src.ListResumeUploads(gctx, userID)
		return wrapRead("resume uploads", err)
	})
	g.Go(func() (err error) {
		ev.analyses, err = src.ListResumeAnalyses(gctx, userID)
		return wrapRead("resume analyses", err)
	})
	g.Go(func() (err error) {
		ev.records, err = src.ListFeedbackRecords(gctx, userID)
		return wrapRead("feedback records", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ev, nil
}

func wrapRead(collection string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: failed to read %s: %w", ErrStorageUnavailable, collection, err)
}
