package types

import "time"

// SentimentPoint is one sample of the voice sentiment trend.
type SentimentPoint struct {
	Date      time.Time `json:"date"`
	Sentiment float64   `json:"sentiment"`
}

// Value returns the sampled sentiment.
func (p SentimentPoint) Value() float64 { return p.Sentiment }

// FillerPoint is one sample of the filler-word trend.
type FillerPoint struct {
	Date        time.Time `json:"date"`
	FillerCount float64   `json:"filler_count"`
}

// Value returns the sampled filler-word count.
func (p FillerPoint) Value() float64 { return p.FillerCount }

// CodingPoint is a single-submission accuracy sample (not a running average).
type CodingPoint struct {
	Date     time.Time `json:"date"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
	Accuracy float64   `json:"accuracy"`
}

// Value returns the sampled accuracy percentage.
func (p CodingPoint) Value() float64 { return p.Accuracy }

// TechPoint is a technical-question accuracy sample. No source produces them yet.
type TechPoint struct {
	Date     time.Time `json:"date"`
	Accuracy float64   `json:"accuracy"`
}

// Value returns the sampled accuracy percentage.
func (p TechPoint) Value() float64 { return p.Accuracy }

// ResumePoint is one resume-match sample.
type ResumePoint struct {
	Date         time.Time `json:"date"`
	MatchPercent float64   `json:"match_percent"`
}

// Value returns the sampled match percentage.
func (p ResumePoint) Value() float64 { return p.MatchPercent }

// GrowthMetric is the range of one trend. Start and End are the first and last
// points of the series, or an empty object when the series is empty.
type GrowthMetric struct {
	Start    any     `json:"start"`
	End      any     `json:"end"`
	Diff     float64 `json:"diff"`
	Improved bool    `json:"improved"`
}

// GrowthSet holds the growth metrics keyed by metric name.
type GrowthSet struct {
	Coding    GrowthMetric `json:"coding"`
	Tech      GrowthMetric `json:"tech"`
	Sentiment GrowthMetric `json:"sentiment"`
	Filler    GrowthMetric `json:"filler"`
	Resume    GrowthMetric `json:"resume"`
}

// FeedbackEntry is one item of the merged recent-activity feed.
type FeedbackEntry struct {
	Date     time.Time `json:"date"`
	Feedback string    `json:"feedback"`
	Type     string    `json:"type"`
}

// ProgressSummary is the dashboard view of a user's progress. It is computed on
// every request and never stored.
type ProgressSummary struct {
	Growth         GrowthSet        `json:"growth"`
	SentimentTrend []SentimentPoint `json:"sentimentTrend"`
	FillerTrend    []FillerPoint    `json:"fillerTrend"`
	CodingTrend    []CodingPoint    `json:"codingTrend"`
	TechTrend      []TechPoint      `json:"techTrend"`
	ResumeTrend    []ResumePoint    `json:"resumeTrend"`
	FeedbackLog    []FeedbackEntry  `json:"feedbackLog"`
}
