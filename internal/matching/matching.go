// Package matching compares a resume against a job description by keyword overlap.
package matching

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// MaxListedKeywords is how many matched keywords the result text lists.
const MaxListedKeywords = 20

// maxMissingListed bounds the missing-keyword hint in Advise.
const maxMissingListed = 8

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Tokens lowercases text and splits it on runs of non-word characters.
// Tokens keep first-appearance order and duplicates are removed.
func Tokens(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Match scores resume against jobDesc. The percentage is the share of distinct
// job-description words that also appear in the resume, counting only common
// words longer than two characters. An empty job description scores 0.
func Match(resume, jobDesc string) types.MatchResult {
	jdWords := Tokens(jobDesc)
	jdSet := make(map[string]struct{}, len(jdWords))
	for _, w := range jdWords {
		jdSet[w] = struct{}{}
	}

	common := []string{}
	for _, w := range Tokens(resume) {
		if len(w) <= 2 {
			continue
		}
		if _, ok := jdSet[w]; ok {
			common = append(common, w)
		}
	}

	percent := 0
	if len(jdSet) > 0 {
		percent = int(math.Round(float64(len(common)) / float64(len(jdSet)) * 100))
	}

	return types.MatchResult{
		Result:          formatResult(percent, common),
		MatchPercent:    percent,
		MatchedKeywords: common,
	}
}

func formatResult(percent int, common []string) string {
	listed := common
	more := ""
	if len(listed) > MaxListedKeywords {
		listed = listed[:MaxListedKeywords]
		more = ", ..."
	}
	return fmt.Sprintf("AI Match Score: %d%%\n\nMatched Keywords: %s%s", percent, strings.Join(listed, ", "), more)
}

// Advice is actionable feedback derived from a resume and job description.
type Advice struct {
	Suggestions []string `json:"suggestions"`
	Missing     []string `json:"missing"`
	Overlap     []string `json:"overlap"`
}

var sectionHints = []struct {
	pattern *regexp.Regexp
	hint    string
}{
	{regexp.MustCompile(`(?i)project`), "Tip: Add a 'Projects' section if you have relevant projects."},
	{regexp.MustCompile(`(?i)experience`), "Tip: Make sure to highlight your 'Work Experience' section."},
	{regexp.MustCompile(`(?i)education`), "Tip: Include an 'Education' section for academic qualifications."},
	{regexp.MustCompile(`(?i)certificat`), "Tip: Mention relevant certifications, if any."},
}

// Advise lists job-description keywords (longer than three characters) that
// the resume covers and misses, plus coverage and section suggestions.
func Advise(resume, jobDesc string) Advice {
	resumeSet := make(map[string]struct{})
	for _, w := range Tokens(resume) {
		resumeSet[w] = struct{}{}
	}

	advice := Advice{Suggestions: []string{}, Missing: []string{}, Overlap: []string{}}
	for _, w := range Tokens(jobDesc) {
		if len(w) <= 3 {
			continue
		}
		if _, ok := resumeSet[w]; ok {
			advice.Overlap = append(advice.Overlap, w)
		} else {
			advice.Missing = append(advice.Missing, w)
		}
	}

	switch n := len(advice.Overlap); {
	case n > 15:
		advice.Suggestions = append(advice.Suggestions, "Excellent coverage! Your resume contains many important keywords from the job description.")
	case n > 6:
		advice.Suggestions = append(advice.Suggestions, "Good start! Your resume matches several key terms, but you can still add more specific skills from the job description.")
	case n > 0:
		advice.Suggestions = append(advice.Suggestions, "Your resume includes a few relevant keywords, but it's missing many important terms from the job description.")
	default:
		advice.Suggestions = append(advice.Suggestions, "Your resume doesn't match many keywords from the job description. Consider revising it to include more relevant skills.")
	}

	if len(advice.Missing) > 0 {
		listed := advice.Missing
		more := ""
		if len(listed) > maxMissingListed {
			listed = listed[:maxMissingListed]
			more = ", ..."
		}
		advice.Suggestions = append(advice.Suggestions, "Consider adding these skills or keywords: "+strings.Join(listed, ", ")+more)
	} else {
		advice.Suggestions = append(advice.Suggestions, "Great! All important skills from the job description are mentioned in your resume.")
	}

	for _, h := range sectionHints {
		if !h.pattern.MatchString(resume) {
			advice.Suggestions = append(advice.Suggestions, h.hint)
		}
	}
	return advice
}
