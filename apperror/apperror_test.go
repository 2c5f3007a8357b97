package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("no credentials", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not yours", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("missing", nil), http.StatusNotFound},
		{"validation", NewValidationError("bad input", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("bad input", nil), http.StatusBadRequest},
		{"conflict", NewConflictError("exists", nil), http.StatusConflict},
		{"database", NewDatabaseError("query failed", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"config", NewConfigError("bad config", nil), http.StatusInternalServerError},
		{"migration", NewMigrationError("migrate failed", nil), http.StatusInternalServerError},
		{"external", NewExternalServiceError("upstream down", nil), http.StatusBadGateway},
		{"unknown", NewAppError(UnknownError, "??", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestToResponseHidesUnderlyingError(t *testing.T) {
	underlying := errors.New("pq: duplicate key value violates unique constraint")
	appErr := NewDatabaseError("Server error", underlying)

	resp := appErr.ToResponse()
	require.Equal(t, "Server error", resp.Error)
	require.NotContains(t, resp.Error, "duplicate key")

	// The full chain stays available for server-side logging.
	require.Contains(t, appErr.Error(), "duplicate key")
	require.ErrorIs(t, appErr, underlying)
}

func TestFromErrorUnwrapsChain(t *testing.T) {
	appErr := NewNotFoundError("user not found", nil)
	wrapped := fmt.Errorf("handling request: %w", appErr)

	got, ok := FromError(wrapped)
	require.True(t, ok)
	require.Equal(t, NotFoundError, got.Type)
	require.True(t, IsNotFound(wrapped))

	_, ok = FromError(errors.New("plain"))
	require.False(t, ok)
	_, ok = FromError(nil)
	require.False(t, ok)
}

func TestTypePredicates(t *testing.T) {
	require.True(t, IsAuthError(NewAuthError("x", nil)))
	require.True(t, IsForbidden(NewForbiddenError("x", nil)))
	require.True(t, IsValidationError(NewValidationError("x", nil)))
	require.True(t, IsConflict(NewConflictError("x", nil)))
	require.False(t, IsConflict(NewAuthError("x", nil)))
}
