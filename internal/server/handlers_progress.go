package server

import (
	"log/slog"
	"net/http"
)

// handleProgressSummary serves the aggregated practice progress of the caller.
func (s *Server) handleProgressSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	summary, err := s.progress.Summary(r.Context(), userID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "progress summary failed", slog.Any("error", err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get progress summary")
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}
