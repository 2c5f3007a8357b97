package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/vgdirect-go/config"
)

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok, "claims must be in context on protected routes")
		WriteJSON(w, http.StatusOK, claims)
	})
}

func TestJWTMiddlewareStatusMatrix(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: testSecret, TokenDuration: time.Hour}
	handler := JWTMiddleware(cfg)(protectedEcho(t))

	valid, _, err := IssueToken(12, "carol", testSecret, time.Hour)
	require.NoError(t, err)
	expired, _, err := IssueToken(12, "carol", testSecret, -time.Minute)
	require.NoError(t, err)
	foreign, _, err := IssueToken(12, "carol", "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusForbidden},
		{"bare token without scheme", valid, http.StatusForbidden},
		{"garbage token", "Bearer not.a.real.token", http.StatusForbidden},
		{"expired token", "Bearer " + expired, http.StatusForbidden},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden},
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"case-insensitive scheme", "bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestJWTMiddlewareAttachesClaims(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: testSecret, TokenDuration: time.Hour}
	handler := JWTMiddleware(cfg)(protectedEcho(t))

	token, _, err := IssueToken(99, "dave", testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got Claims
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 99, got.UserID)
	require.Equal(t, "dave", got.Username)
}

func TestJWTMiddlewareErrorShape(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: testSecret}
	handler := JWTMiddleware(cfg)(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "error")
}
