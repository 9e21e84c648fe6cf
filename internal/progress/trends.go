package progress

import (
	"github.com/jonathan/interview-coach/internal/types"
)

// voiceRecords keeps the feedback records produced by the voice flow, in order.
func voiceRecords(records []types.FeedbackRecord) []types.FeedbackRecord {
	out := make([]types.FeedbackRecord, 0, len(records))
	for _, r := range records {
		if r.Context == types.ContextVoice {
			out = append(out, r)
		}
	}
	return out
}

// SentimentTrend projects voice feedback records onto their sentiment score.
func SentimentTrend(records []types.FeedbackRecord) []types.SentimentPoint {
	voice := voiceRecords(records)
	trend := make([]types.SentimentPoint, 0, len(voice))
	for _, r := range voice {
		trend = append(trend, types.SentimentPoint{
			Date:      r.CreatedAt,
			Sentiment: CoerceNumber(r.Sentiment),
		})
	}
	return trend
}

// FillerTrend projects voice feedback records onto their filler-word count.
func FillerTrend(records []types.FeedbackRecord) []types.FillerPoint {
	voice := voiceRecords(records)
	trend := make([]types.FillerPoint, 0, len(voice))
	for _, r := range voice {
		trend = append(trend, types.FillerPoint{
			Date:        r.CreatedAt,
			FillerCount: CoerceNumber(r.FillerWords),
		})
	}
	return trend
}

// CodingTrend maps each submission to a binary accuracy sample: 100 when it
// passed, 0 otherwise.
func CodingTrend(submissions []types.CodingSubmission) []types.CodingPoint {
	trend := make([]types.CodingPoint, 0, len(submissions))
	for _, s := range submissions {
		p := types.CodingPoint{Date: s.SubmittedAt, Total: 1}
		if s.Passed {
			p.Correct = 1
			p.Accuracy = 100
		}
		trend = append(trend, p)
	}
	return trend
}

// ResumeTrend projects resume analyses onto their match percentage.
func ResumeTrend(analyses []types.ResumeAnalysis) []types.ResumePoint {
	trend := make([]types.ResumePoint, 0, len(analyses))
	for _, a := range analyses {
		trend = append(trend, types.ResumePoint{
			Date:         a.AnalyzedAt,
			MatchPercent: CoerceNumber(a.MatchScore),
		})
	}
	return trend
}

// TechTrend is always empty: technical answers are not tracked per user.
func TechTrend() []types.TechPoint {
	return []types.TechPoint{}
}
