package progress

import (
	"testing"

	"github.com/jonathan/interview-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceFragment_Project(t *testing.T) {
	tests := []struct {
		name  string
		event types.VoiceFeedback
		want  string
	}{
		{name: "suggestions joined", event: types.VoiceFeedback{Suggestions: []string{"slow down", "smile"}}, want: "slow down; smile"},
		{name: "fallback text", event: types.VoiceFeedback{Feedback: "clear delivery"}, want: "clear delivery"},
		{name: "nothing", event: types.VoiceFeedback{}, want: "(No feedback)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.event.Timestamp = at(1)
			e := VoiceFragment{Event: tt.event}.Project()
			assert.Equal(t, tt.want, e.Feedback)
			assert.Equal(t, "Voice", e.Type)
			assert.Equal(t, at(1), e.Date)
		})
	}
}

func TestRecordFragment_Project(t *testing.T) {
	tests := []struct {
		name     string
		record   types.FeedbackRecord
		wantText string
		wantType string
	}{
		{
			name:     "suggestions win",
			record:   types.FeedbackRecord{Context: "resume", Suggestions: []string{"add metrics"}, MatchScore: score(50)},
			wantText: "add metrics",
			wantType: "Resume",
		},
		{
			name:     "match score",
			record:   types.FeedbackRecord{Context: "combined", MatchScore: score(67.5)},
			wantText: "Resume match: 67.5%",
			wantType: "Combined",
		},
		{
			name:     "zero match score still reported",
			record:   types.FeedbackRecord{Context: "resume", MatchScore: score(0)},
			wantText: "Resume match: 0%",
			wantType: "Resume",
		},
		{
			name:     "sentiment label",
			record:   types.FeedbackRecord{Context: "voice", Sentiment: types.StringValue("positive"), Emotion: "happy"},
			wantText: "positive",
			wantType: "Voice",
		},
		{
			name:     "numeric sentiment",
			record:   types.FeedbackRecord{Context: "voice", Sentiment: types.NumberValue(0.6)},
			wantText: "0.6",
			wantType: "Voice",
		},
		{
			name:     "emotion",
			record:   types.FeedbackRecord{Context: "voice", Emotion: "nervous"},
			wantText: "nervous",
			wantType: "Voice",
		},
		{
			name:     "empty context",
			record:   types.FeedbackRecord{},
			wantText: "(No feedback)",
			wantType: "Other",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := RecordFragment{Event: tt.record}.Project()
			assert.Equal(t, tt.wantText, e.Feedback)
			assert.Equal(t, tt.wantType, e.Type)
		})
	}
}

func TestResumeFragment_Project(t *testing.T) {
	assert.Equal(t, "Resume match score: 72%", ResumeFragment{Event: types.ResumeAnalysis{MatchScore: score(72)}}.Project().Feedback)
	assert.Equal(t, "", ResumeFragment{Event: types.ResumeAnalysis{}}.Project().Feedback)
}

func TestCollectFragments_SkipsCodingWithoutSuggestions(t *testing.T) {
	ev := &events{
		coding: []types.CodingSubmission{
			{SubmittedAt: at(0)},
			{SubmittedAt: at(1), Suggestions: []string{"Status: Wrong Answer"}},
		},
	}
	frags := collectFragments(ev)
	require.Len(t, frags, 1)
	assert.Equal(t, "Status: Wrong Answer", frags[0].Project().Feedback)
}

func TestMerge(t *testing.T) {
	t.Run("drops blank and whitespace entries", func(t *testing.T) {
		frags := []Fragment{
			CodingFragment{Event: types.CodingSubmission{SubmittedAt: at(0), Suggestions: []string{"   "}}},
			ResumeFragment{Event: types.ResumeAnalysis{AnalyzedAt: at(1)}},
			VoiceFragment{Event: types.VoiceFeedback{Timestamp: at(2), Suggestions: []string{"ok"}}},
		}
		out := Merge(frags, DefaultFeedbackLimit)
		require.Len(t, out, 1)
		assert.Equal(t, "ok", out[0].Feedback)
	})

	t.Run("equal dates keep source order", func(t *testing.T) {
		frags := []Fragment{
			VoiceFragment{Event: types.VoiceFeedback{Timestamp: at(5), Feedback: "voice"}},
			CodingFragment{Event: types.CodingSubmission{SubmittedAt: at(5), Suggestions: []string{"coding"}}},
			RecordFragment{Event: types.FeedbackRecord{CreatedAt: at(5), Context: "combined", Emotion: "record"}},
			ResumeFragment{Event: types.ResumeAnalysis{AnalyzedAt: at(5), MatchScore: score(1)}},
		}
		out := Merge(frags, DefaultFeedbackLimit)
		require.Len(t, out, 4)
		assert.Equal(t, []string{"Voice", "Coding", "Combined", "Resume"},
			[]string{out[0].Type, out[1].Type, out[2].Type, out[3].Type})
	})

	t.Run("keeps newest entries up to limit", func(t *testing.T) {
		var frags []Fragment
		for i := 0; i < 10; i++ {
			frags = append(frags, VoiceFragment{Event: types.VoiceFeedback{Timestamp: at(i), Feedback: "x"}})
		}
		out := Merge(frags, DefaultFeedbackLimit)
		require.Len(t, out, 8)
		assert.Equal(t, at(9), out[0].Date)
		assert.Equal(t, at(2), out[7].Date)
	})

	t.Run("no fragments", func(t *testing.T) {
		out := Merge(nil, DefaultFeedbackLimit)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestContextLabel(t *testing.T) {
	assert.Equal(t, "Voice", contextLabel("voice"))
	assert.Equal(t, "Combined", contextLabel("combined"))
	assert.Equal(t, "Other", contextLabel(""))
}
