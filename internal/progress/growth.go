package progress

import (
	"github.com/jonathan/interview-coach/internal/types"
)

// Metric names a growth metric.
type Metric string

// Growth metrics reported in a summary
const (
	MetricCoding    Metric = "coding"
	MetricTech      Metric = "tech"
	MetricSentiment Metric = "sentiment"
	MetricFiller    Metric = "filler"
	MetricResume    Metric = "resume"
)

// MetricPolicy decides which direction of change counts as an improvement.
type MetricPolicy struct {
	HigherIsBetter bool
	// AlwaysUp reports every change, including a decline, as an improvement.
	// The filler metric has always been displayed this way; the flag keeps
	// that presentation separate from the growth arithmetic.
	AlwaysUp bool
}

// Improved reports whether diff is a change for the better under p.
func (p MetricPolicy) Improved(diff float64) bool {
	if p.AlwaysUp {
		return true
	}
	if p.HigherIsBetter {
		return diff >= 0
	}
	return diff <= 0
}

// DefaultPolicies returns the direction policy of every metric.
// TODO: drop AlwaysUp on filler once product confirms fewer filler words should read as improvement.
func DefaultPolicies() map[Metric]MetricPolicy {
	return map[Metric]MetricPolicy{
		MetricCoding:    {HigherIsBetter: true},
		MetricTech:      {HigherIsBetter: true},
		MetricSentiment: {HigherIsBetter: true},
		MetricFiller:    {HigherIsBetter: false, AlwaysUp: true},
		MetricResume:    {HigherIsBetter: true},
	}
}

type valuer interface {
	Value() float64
}

// Growth is the last value minus the first, rounded to two decimals. Empty and
// single-point series have no growth. This is a two-point delta, not a fitted
// slope: intermediate samples do not affect it.
func Growth[P valuer](series []P) float64 {
	if len(series) == 0 {
		return 0
	}
	return round2(series[len(series)-1].Value() - series[0].Value())
}

// Range returns the first and last points of series with its growth.
func Range[P valuer](series []P, policy MetricPolicy) types.GrowthMetric {
	m := types.GrowthMetric{
		Start: struct{}{},
		End:   struct{}{},
		Diff:  Growth(series),
	}
	if len(series) > 0 {
		m.Start = series[0]
		m.End = series[len(series)-1]
	}
	m.Improved = policy.Improved(m.Diff)
	return m
}
