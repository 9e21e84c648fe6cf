package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/interview-coach/internal/types"
)

// Event kinds reported to the events_recorded metric.
const (
	kindVoiceFeedback    = "voice_feedback"
	kindFeedbackRecord   = "feedback_record"
	kindCodingSubmission = "coding_submission"
	kindResumeUpload     = "resume_upload"
	kindResumeAnalysis   = "resume_analysis"
)

// ---------------------------------------------------------------------
// Voice feedback
// ---------------------------------------------------------------------

func (s *Server) handleSaveVoiceFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.SaveVoiceFeedbackRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	event := &types.VoiceFeedback{
		UserID:        userID,
		Emotion:       req.Emotion,
		Pitch:         req.Pitch,
		Energy:        req.Energy,
		Tempo:         req.Tempo,
		Suggestions:   nonNil(req.Suggestions),
		AudioFileName: req.AudioFileName,
		Feedback:      req.Feedback,
	}
	if err := s.store.CreateVoiceFeedback(r.Context(), event); err != nil {
		s.storeFailure(w, r, "DB save failed", err)
		return
	}
	s.metrics.EventRecorded(kindVoiceFeedback)
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "feedback": event})
}

func (s *Server) handleVoiceFeedbackHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	history, err := s.store.VoiceFeedbackHistory(r.Context(), userID, s.historyLimit)
	if err != nil {
		s.storeFailure(w, r, "Failed to fetch history", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, nonNil(history))
}

func (s *Server) handleDeleteVoiceFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	err = s.store.DeleteVoiceFeedback(r.Context(), userID, id)
	switch {
	case errors.Is(err, types.ErrNotFound):
		s.jsonResponse(w, http.StatusNotFound, map[string]any{"success": false, "error": "Not found"})
	case err != nil:
		s.storeFailure(w, r, "Delete failed", err)
	default:
		s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ---------------------------------------------------------------------
// Feedback records
// ---------------------------------------------------------------------

func (s *Server) handleSaveFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.SaveFeedbackRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	feedbackContext := req.Context
	if feedbackContext == "" {
		feedbackContext = types.ContextCombined
	}
	record := &types.FeedbackRecord{
		UserID:          userID,
		Context:         feedbackContext,
		MatchScore:      req.MatchScore,
		MissingKeywords: nonNil(req.MissingKeywords),
		Sentiment:       req.Sentiment,
		Emotion:         req.Emotion,
		FillerWords:     req.FillerWords,
		KeywordsMatched: nonNil(req.KeywordsMatched),
		Suggestions:     nonNil(req.Suggestions),
	}
	if err := s.store.CreateFeedbackRecord(r.Context(), record); err != nil {
		s.storeFailure(w, r, "Server error while saving feedback", err)
		return
	}
	s.metrics.EventRecorded(kindFeedbackRecord)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"msg":         "Feedback saved",
		"suggestions": record.Suggestions,
		"id":          record.ID,
	})
}

func (s *Server) handleFeedbackHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	history, err := s.store.FeedbackRecordHistory(r.Context(), userID, s.historyLimit)
	if err != nil {
		s.storeFailure(w, r, "Failed to load feedback history", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, nonNil(history))
}

// ---------------------------------------------------------------------
// Coding round
// ---------------------------------------------------------------------

// Judge status descriptions.
const (
	statusAccepted    = "Accepted"
	statusWrongAnswer = "Wrong Answer"
)

// judgeSubmission turns a submission and its judge verdict into the stored
// event and the reported status. Without a verdict, the output is checked
// against the first test case of the bank question, when there is one. A
// missing passed flag is derived from the status, the output falls back to
// compiler output then stderr, and suggestions are generated when the caller
// sent none.
func judgeSubmission(req *types.SubmitCodingRequest, question *types.CodingQuestion) (*types.CodingSubmission, string) {
	output := req.Output
	for _, alt := range []string{req.CompileOutput, req.Stderr} {
		if output != "" {
			break
		}
		output = alt
	}

	status := strings.TrimSpace(req.Status)
	if status == "" && req.Passed == nil && question != nil && len(question.TestCases) > 0 {
		status = statusWrongAnswer
		if strings.TrimSpace(output) == strings.TrimSpace(question.TestCases[0].ExpectedOutput) {
			status = statusAccepted
		}
	}

	passed := status == statusAccepted
	if req.Passed != nil {
		passed = *req.Passed
	}

	suggestions := req.Suggestions
	if len(suggestions) == 0 {
		suggestions = codingSuggestions(passed, status, req)
	}

	return &types.CodingSubmission{
		QuestionID:  req.QuestionID,
		Code:        req.Code,
		Language:    req.Language,
		Output:      output,
		Passed:      passed,
		Suggestions: suggestions,
	}, status
}

func codingSuggestions(passed bool, status string, req *types.SubmitCodingRequest) []string {
	if passed {
		return []string{"Great job! Your code passed."}
	}
	out := []string{"Check your logic and output format."}
	if req.Stderr != "" {
		out = append(out, "Errors: "+req.Stderr)
	}
	if req.CompileOutput != "" {
		out = append(out, "Compiler says: "+req.CompileOutput)
	}
	if status != "" {
		out = append(out, "Status: "+status)
	}
	return out
}

func (s *Server) handleSubmitCoding(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.SubmitCodingRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	question, err := s.resolveQuestion(r, req.QuestionID)
	if err != nil {
		s.storeFailure(w, r, "Failed to submit code", err)
		return
	}
	submission, status := judgeSubmission(&req, question)
	submission.UserID = userID
	if err := s.store.CreateCodingSubmission(r.Context(), submission); err != nil {
		s.storeFailure(w, r, "Failed to submit code", err)
		return
	}
	s.metrics.EventRecorded(kindCodingSubmission)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":          submission.ID,
		"output":      submission.Output,
		"passed":      submission.Passed,
		"suggestions": submission.Suggestions,
		"status":      status,
	})
}

func (s *Server) handleCodingHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	history, err := s.store.CodingSubmissionHistory(r.Context(), userID, s.historyLimit)
	if err != nil {
		s.storeFailure(w, r, "Failed to fetch history", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, nonNil(history))
}

func (s *Server) handleDeleteCodingSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	err = s.store.DeleteCodingSubmission(r.Context(), userID, id)
	switch {
	case errors.Is(err, types.ErrNotFound):
		s.errorResponse(w, http.StatusNotFound, "Submission not found")
	case err != nil:
		s.storeFailure(w, r, "Delete failed", err)
	default:
		s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
