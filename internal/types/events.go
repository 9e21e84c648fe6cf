// Package types provides type definitions for structured data used throughout the interview-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Feedback record contexts
const (
	ContextResume   = "resume"
	ContextVoice    = "voice"
	ContextCombined = "combined"
)

// VoiceFeedback is one voice-analysis result recorded for a user.
type VoiceFeedback struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
	Emotion       string    `json:"emotion,omitempty"`
	Pitch         float64   `json:"pitch"`
	Energy        float64   `json:"energy"`
	Tempo         float64   `json:"tempo"`
	Suggestions   []string  `json:"suggestions"`
	AudioFileName string    `json:"audio_file_name,omitempty"`
	// Feedback is free text used in the activity feed when there are no suggestions.
	Feedback string `json:"feedback,omitempty"`
}

// CodingSubmission is one judged coding-round answer.
type CodingSubmission struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	QuestionID  string    `json:"question_id"`
	Code        string    `json:"code"`
	Language    string    `json:"language"`
	Output      string    `json:"output"`
	Passed      bool      `json:"passed"`
	Suggestions []string  `json:"suggestions"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ResumeUpload holds the extracted texts of a resume and the job description it targets.
type ResumeUpload struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ResumeText  string    `json:"resume_text"`
	JobDescText string    `json:"job_desc_text"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ResumeAnalysis is a match-score run against a ResumeUpload.
type ResumeAnalysis struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ResumeID   uuid.UUID `json:"resume_id"`
	MatchScore *float64  `json:"match_score,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// FeedbackRecord is the general-purpose feedback container written by the resume and voice flows.
type FeedbackRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Context         string    `json:"context"`
	MatchScore      *float64  `json:"match_score,omitempty"`
	MissingKeywords []string  `json:"missing_keywords"`
	Sentiment       FlexValue `json:"sentiment,omitempty"`
	Emotion         string    `json:"emotion,omitempty"`
	FillerWords     FlexValue `json:"filler_words,omitempty"`
	KeywordsMatched []string  `json:"keywords_matched"`
	Suggestions     []string  `json:"suggestions"`
	CreatedAt       time.Time `json:"created_at"`
}

// FlexValue keeps a scalar exactly as the client sent it, string or number.
// Interpretation is left to the reader.
type FlexValue json.RawMessage

// MarshalJSON implements json.Marshaler
func (v FlexValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return []byte(v), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	*v = append((*v)[:0], data...)
	return nil
}

// IsNull reports whether the value is absent or JSON null.
func (v FlexValue) IsNull() bool {
	trimmed := bytes.TrimSpace(v)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// AsNumber returns the value as a float64 when it is a JSON number.
func (v FlexValue) AsNumber() (float64, bool) {
	if v.IsNull() {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, false
	}
	return n, true
}

// AsString returns the value as a string when it is a JSON string.
func (v FlexValue) AsString() (string, bool) {
	if v.IsNull() {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// Text renders the value for display: strings verbatim, numbers in shortest form.
// Null, empty strings and zero yield "".
func (v FlexValue) Text() string {
	if s, ok := v.AsString(); ok {
		return s
	}
	if n, ok := v.AsNumber(); ok && n != 0 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// NumberValue builds a FlexValue holding a JSON number.
func NumberValue(n float64) FlexValue {
	return FlexValue(strconv.FormatFloat(n, 'f', -1, 64))
}

// StringValue builds a FlexValue holding a JSON string.
func StringValue(s string) FlexValue {
	b, _ := json.Marshal(s)
	return FlexValue(b)
}

// EventBundle is a batch of one user's events, as exchanged by import and export.
type EventBundle struct {
	UserID            uuid.UUID          `json:"user_id"`
	VoiceFeedback     []VoiceFeedback    `json:"voice_feedback,omitempty"`
	CodingSubmissions []CodingSubmission `json:"coding_submissions,omitempty"`
	ResumeUploads     []ResumeUpload     `json:"resume_uploads,omitempty"`
	ResumeAnalyses    []ResumeAnalysis   `json:"resume_analyses,omitempty"`
	FeedbackRecords   []FeedbackRecord   `json:"feedback_records,omitempty"`
}
