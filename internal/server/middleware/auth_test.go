package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts only the tokens registered with it.
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return testClaims(userID), nil
}

type testClaims uuid.UUID

func (c testClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := &testTokenValidator{validTokens: map[string]uuid.UUID{
		"good-token": userID,
		"nil-user":   uuid.Nil,
	}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "valid", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMsg: msgNoToken},
		{name: "no scheme", header: "good-token", wantStatus: http.StatusUnauthorized, wantMsg: msgNoToken},
		{name: "basic scheme", header: "Basic good-token", wantStatus: http.StatusUnauthorized, wantMsg: msgNoToken},
		{name: "extra parts", header: "Bearer good-token extra", wantStatus: http.StatusUnauthorized, wantMsg: msgNoToken},
		{name: "unknown token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantMsg: msgInvalidToken},
		{name: "nil user", header: "Bearer nil-user", wantStatus: http.StatusUnauthorized, wantMsg: msgInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser uuid.UUID
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, err := GetUserID(r)
				require.NoError(t, err)
				gotUser = id
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/progress/summary", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg == "" {
				assert.Equal(t, userID, gotUser)
				return
			}
			assert.Equal(t, uuid.Nil, gotUser, "next handler must not run")
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["msg"])
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestWithUserID(t *testing.T) {
	userID := uuid.New()
	ctx := WithUserID(context.Background(), userID)

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, userID.String(), observability.GetLogFields(ctx).UserID)
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUser)

	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))
	_, err = GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUser)
}
