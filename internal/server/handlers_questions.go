package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/types"
)

// ---------------------------------------------------------------------
// Coding question bank
// ---------------------------------------------------------------------

// handleCodingQuestions lists the bank for ?section=, or all of it.
func (s *Server) handleCodingQuestions(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	questions, err := s.store.ListCodingQuestions(r.Context(), strings.TrimSpace(r.URL.Query().Get("section")))
	if err != nil {
		s.storeFailure(w, r, "Failed to fetch questions", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, questions)
}

func (s *Server) handleSaveCodingQuestion(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	var req types.SaveCodingQuestionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.logger.DebugContext(r.Context(), "rejected coding question", "error", err)
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid question data"})
		return
	}

	question := req.Question.CodingQuestion()
	if err := s.store.CreateCodingQuestion(r.Context(), question); err != nil {
		s.storeFailure(w, r, "Failed to save question", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "question": question})
}

// resolveQuestion looks up a submission's question in the bank. Question IDs
// that are not bank IDs resolve to nil.
func (s *Server) resolveQuestion(r *http.Request, questionID string) (*types.CodingQuestion, error) {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return nil, nil
	}
	question, err := s.store.GetCodingQuestion(r.Context(), id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	return question, err
}

// ---------------------------------------------------------------------
// Tech question bank
// ---------------------------------------------------------------------

// handleTechQuestions lists the bank for ?topic=, newest first.
func (s *Server) handleTechQuestions(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	questions, err := s.store.ListTechQuestions(r.Context(), strings.TrimSpace(r.URL.Query().Get("topic")))
	if err != nil {
		s.storeFailure(w, r, "Server error", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, questions)
}

func (s *Server) handleSaveTechQuestion(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	var req types.SaveTechQuestionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = types.DefaultTechDifficulty
	}
	question := &types.TechQuestion{Question: req.Question, Topic: req.Topic, Difficulty: difficulty}
	if err := s.store.CreateTechQuestion(r.Context(), question); err != nil {
		s.storeFailure(w, r, "Failed to save question.", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, question)
}
