package progress

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/interview-coach/internal/types"
)

// DefaultFeedbackLimit is the number of entries kept in the activity feed.
const DefaultFeedbackLimit = 8

const noFeedback = "(No feedback)"

// Fragment is a source event that contributes one entry to the activity feed.
// The set of implementations is closed.
type Fragment interface {
	Project() types.FeedbackEntry
	fragment()
}

// VoiceFragment wraps a voice-analysis event.
type VoiceFragment struct{ Event types.VoiceFeedback }

// CodingFragment wraps a coding submission.
type CodingFragment struct{ Event types.CodingSubmission }

// RecordFragment wraps a generic feedback record.
type RecordFragment struct{ Event types.FeedbackRecord }

// ResumeFragment wraps a resume analysis.
type ResumeFragment struct{ Event types.ResumeAnalysis }

func (VoiceFragment) fragment()  {}
func (CodingFragment) fragment() {}
func (RecordFragment) fragment() {}
func (ResumeFragment) fragment() {}

// Project implements Fragment.
func (f VoiceFragment) Project() types.FeedbackEntry {
	text := joinSuggestions(f.Event.Suggestions)
	if text == "" {
		text = f.Event.Feedback
	}
	if text == "" {
		text = noFeedback
	}
	return types.FeedbackEntry{Date: f.Event.Timestamp, Feedback: text, Type: "Voice"}
}

// Project implements Fragment.
func (f CodingFragment) Project() types.FeedbackEntry {
	return types.FeedbackEntry{
		Date:     f.Event.SubmittedAt,
		Feedback: joinSuggestions(f.Event.Suggestions),
		Type:     "Coding",
	}
}

// Project implements Fragment.
func (f RecordFragment) Project() types.FeedbackEntry {
	r := f.Event
	text := joinSuggestions(r.Suggestions)
	switch {
	case text != "":
	case r.MatchScore != nil:
		text = "Resume match: " + formatScore(*r.MatchScore) + "%"
	case r.Sentiment.Text() != "":
		text = r.Sentiment.Text()
	case r.Emotion != "":
		text = r.Emotion
	default:
		text = noFeedback
	}
	return types.FeedbackEntry{Date: r.CreatedAt, Feedback: text, Type: contextLabel(r.Context)}
}

// Project implements Fragment.
func (f ResumeFragment) Project() types.FeedbackEntry {
	entry := types.FeedbackEntry{Date: f.Event.AnalyzedAt, Type: "Resume"}
	if f.Event.MatchScore != nil {
		entry.Feedback = "Resume match score: " + formatScore(*f.Event.MatchScore) + "%"
	}
	return entry
}

// collectFragments lists fragments in source order: voice, coding, records,
// resume. Merge relies on this order to break date ties.
func collectFragments(ev *events) []Fragment {
	frags := make([]Fragment, 0, len(ev.voice)+len(ev.coding)+len(ev.records)+len(ev.analyses))
	for _, v := range ev.voice {
		frags = append(frags, VoiceFragment{Event: v})
	}
	for _, c := range ev.coding {
		if len(c.Suggestions) == 0 {
			continue
		}
		frags = append(frags, CodingFragment{Event: c})
	}
	for _, r := range ev.records {
		frags = append(frags, RecordFragment{Event: r})
	}
	for _, a := range ev.analyses {
		frags = append(frags, ResumeFragment{Event: a})
	}
	return frags
}

// Merge projects fragments, drops blank entries, orders them newest first and
// keeps at most limit. Entries with equal dates keep their input order.
func Merge(frags []Fragment, limit int) []types.FeedbackEntry {
	entries := make([]types.FeedbackEntry, 0, len(frags))
	for _, f := range frags {
		e := f.Project()
		if strings.TrimSpace(e.Feedback) == "" {
			continue
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func joinSuggestions(s []string) string {
	return strings.Join(s, "; ")
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// contextLabel capitalizes a record context for display.
func contextLabel(ctx string) string {
	if ctx == "" {
		return "Other"
	}
	r, size := utf8.DecodeRuneInString(ctx)
	return string(unicode.ToUpper(r)) + ctx[size:]
}
