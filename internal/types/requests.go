package types

import (
	"github.com/go-playground/validator/v10"
)

// SaveVoiceFeedbackRequest records the result of a voice analysis.
type SaveVoiceFeedbackRequest struct {
	Emotion       string   `json:"emotion" validate:"max=64"`
	Pitch         float64  `json:"pitch"`
	Energy        float64  `json:"energy"`
	Tempo         float64  `json:"tempo" validate:"gte=0"`
	Suggestions   []string `json:"suggestions" validate:"max=50,dive,max=2000"`
	AudioFileName string   `json:"audioFileName" validate:"max=255"`
	Feedback      string   `json:"feedback" validate:"max=4000"`
}

// SaveFeedbackRequest records a generic feedback result. Context defaults to "combined".
type SaveFeedbackRequest struct {
	Context         string    `json:"context" validate:"omitempty,oneof=resume voice combined"`
	MatchScore      *float64  `json:"matchScore" validate:"omitempty,gte=0,lte=100"`
	Sentiment       FlexValue `json:"sentiment"`
	Emotion         string    `json:"emotion" validate:"max=64"`
	FillerWords     FlexValue `json:"fillerWords"`
	KeywordsMatched []string  `json:"keywordsMatched" validate:"max=500"`
	MissingKeywords []string  `json:"missingKeywords" validate:"max=500"`
	Suggestions     []string  `json:"suggestions" validate:"max=50,dive,max=2000"`
}

// SubmitCodingRequest records a coding-round answer together with the judge's verdict.
type SubmitCodingRequest struct {
	QuestionID    string   `json:"questionId" validate:"required,max=128"`
	Code          string   `json:"code" validate:"required"`
	Language      string   `json:"language" validate:"required,max=32"`
	Output        string   `json:"output"`
	Status        string   `json:"status" validate:"max=128"`
	Stderr        string   `json:"stderr"`
	CompileOutput string   `json:"compileOutput"`
	Passed        *bool    `json:"passed"`
	Suggestions   []string `json:"suggestions" validate:"max=50,dive,max=2000"`
}

// UploadResumeRequest carries the already-extracted texts of a resume and job description.
type UploadResumeRequest struct {
	ResumeText  string `json:"resumeText" validate:"required"`
	JobDescText string `json:"jobDescText" validate:"required"`
}

// MatchResult is the keyword-overlap comparison of a resume against a job description.
type MatchResult struct {
	Result          string   `json:"result"`
	MatchPercent    int      `json:"matchPercent"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// Validate validates the SaveVoiceFeedbackRequest using the validator.
func (r *SaveVoiceFeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SaveFeedbackRequest using the validator.
func (r *SaveFeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SubmitCodingRequest using the validator.
func (r *SubmitCodingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UploadResumeRequest using the validator.
func (r *UploadResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
