package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/types"
)

// Recorder observes summary computations.
type Recorder interface {
	ObserveSummary(duration time.Duration, err error)
}

// Service builds progress summaries from an EventSource.
type Service struct {
	source        EventSource
	policies      map[Metric]MetricPolicy
	feedbackLimit int
	recorder      Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithFeedbackLimit overrides the activity feed size. Values below 1 are ignored.
func WithFeedbackLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.feedbackLimit = n
		}
	}
}

// WithPolicies replaces the direction policy of the given metrics.
func WithPolicies(p map[Metric]MetricPolicy) Option {
	return func(s *Service) {
		for k, v := range p {
			s.policies[k] = v
		}
	}
}

// WithRecorder reports the duration and outcome of every summary.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService creates a Service reading from source.
func NewService(source EventSource, opts ...Option) *Service {
	s := &Service{
		source:        source,
		policies:      DefaultPolicies(),
		feedbackLimit: DefaultFeedbackLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes the progress summary of one user from current storage
// state. Any read failure aborts the whole summary with ErrStorageUnavailable.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (summary *types.ProgressSummary, err error) {
	if s.recorder != nil {
		start := time.Now()
		defer func() { s.recorder.ObserveSummary(time.Since(start), err) }()
	}

	ev, err := readAll(ctx, s.source, userID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ev), nil
}

func (s *Service) assemble(ev *events) *types.ProgressSummary {
	sentiment := SentimentTrend(ev.records)
	filler := FillerTrend(ev.records)
	coding := CodingTrend(ev.coding)
	resume := ResumeTrend(ev.analyses)
	tech := TechTrend()

	return &types.ProgressSummary{
		Growth: types.GrowthSet{
			Coding:    Range(coding, s.policies[MetricCoding]),
			Tech:      Range(tech, s.policies[MetricTech]),
			Sentiment: Range(sentiment, s.policies[MetricSentiment]),
			Filler:    Range(filler, s.policies[MetricFiller]),
			Resume:    Range(resume, s.policies[MetricResume]),
		},
		SentimentTrend: sentiment,
		FillerTrend:    filler,
		CodingTrend:    coding,
		TechTrend:      tech,
		ResumeTrend:    resume,
		FeedbackLog:    Merge(collectFragments(ev), s.feedbackLimit),
	}
}
