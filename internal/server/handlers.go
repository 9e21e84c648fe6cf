package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/server/middleware"
)

// maxBodyBytes bounds request bodies; resume uploads carry full document text.
const maxBodyBytes = 4 << 20

type validatable interface {
	Validate() error
}

// decodeRequest decodes the JSON body into req and runs its validation.
func decodeRequest(w http.ResponseWriter, r *http.Request, req validatable) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// requireUser returns the authenticated user or writes a 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"msg": "No token, authorization denied"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrInvalidID{Value: raw}
	}
	return id, nil
}

// storeFailure logs err and writes a 500 with a fixed message. Storage
// details never reach the client.
func (s *Server) storeFailure(w http.ResponseWriter, r *http.Request, message string, err error) {
	s.logger.ErrorContext(r.Context(), message, slog.Any("error", err))
	s.errorResponse(w, http.StatusInternalServerError, message)
}
