package server

import (
	"net/http"

	"github.com/jonathan/interview-coach/internal/matching"
	"github.com/jonathan/interview-coach/internal/types"
)

const msgNoUpload = "No resume/job description uploaded yet."

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req types.UploadResumeRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	upload := &types.ResumeUpload{
		UserID:      userID,
		ResumeText:  req.ResumeText,
		JobDescText: req.JobDescText,
	}
	if err := s.store.CreateResumeUpload(r.Context(), upload); err != nil {
		s.storeFailure(w, r, "Server error while processing upload.", err)
		return
	}
	s.metrics.EventRecorded(kindResumeUpload)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"msg": "Resume and job description saved.",
		"id":  upload.ID,
	})
}

// latestUpload loads the caller's newest upload, writing the error response
// itself when there is none or the read fails. notFound is the 404 body.
func (s *Server) latestUpload(w http.ResponseWriter, r *http.Request, notFound any) (*types.ResumeUpload, bool) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return nil, false
	}
	upload, err := s.store.LatestResumeUpload(r.Context(), userID)
	if err != nil {
		s.storeFailure(w, r, "Server error while fetching resume/job description text.", err)
		return nil, false
	}
	if upload == nil {
		s.jsonResponse(w, http.StatusNotFound, notFound)
		return nil, false
	}
	return upload, true
}

func (s *Server) handleResumeTexts(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.latestUpload(w, r, map[string]string{"error": msgNoUpload})
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"resumeText": upload.ResumeText,
		"jdText":     upload.JobDescText,
	})
}

func (s *Server) handleRunAIMatch(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.latestUpload(w, r, map[string]string{"result": msgNoUpload})
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, matching.Match(upload.ResumeText, upload.JobDescText))
}

func (s *Server) handleResumeSuggestions(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.latestUpload(w, r, map[string]string{"error": msgNoUpload})
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, matching.Advise(upload.ResumeText, upload.JobDescText))
}

// handleAnalyzeLatest scores the newest upload and records the analysis.
func (s *Server) handleAnalyzeLatest(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.latestUpload(w, r, map[string]string{"error": "No uploaded resume found for this user."})
	if !ok {
		return
	}

	score := float64(matching.Match(upload.ResumeText, upload.JobDescText).MatchPercent)
	analysis := &types.ResumeAnalysis{
		UserID:     upload.UserID,
		ResumeID:   upload.ID,
		MatchScore: &score,
	}
	if err := s.store.CreateResumeAnalysis(r.Context(), analysis); err != nil {
		s.storeFailure(w, r, "Server error during analysis", err)
		return
	}
	s.metrics.EventRecorded(kindResumeAnalysis)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"match_score": score,
		"message":     "Analysis complete and saved.",
	})
}

func (s *Server) handleAnalysisHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	history, err := s.store.ResumeAnalysisHistory(r.Context(), userID, s.historyLimit)
	if err != nil {
		s.storeFailure(w, r, "Failed to load analysis history", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, nonNil(history))
}
