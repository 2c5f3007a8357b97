package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/config"
)

// The validation guards run before any query, so a service with no pool
// exercises them directly.
func newValidationOnlyService() *AuthService {
	return NewAuthService(nil, config.AuthConfig{
		JWTSecret:     testSecret,
		TokenDuration: time.Hour,
		BcryptCost:    4,
	})
}

func requireBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, apperror.BadRequestError, appErr.Type)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	require.Equal(t, message, appErr.Message)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	service := newValidationOnlyService()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"all empty", RegisterRequest{}},
		{"missing username", RegisterRequest{Email: "a@b.com", Password: "passw0rd"}},
		{"missing email", RegisterRequest{Username: "gamer", Password: "passw0rd"}},
		{"missing password", RegisterRequest{Username: "gamer", Email: "a@b.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.req)
			requireBadRequest(t, err, "All fields are required")
		})
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	service := newValidationOnlyService()

	tests := []struct {
		name     string
		password string
	}{
		{"too short", "ab1"},
		{"no digit", "passwords"},
		{"no letter", "12345678"},
		{"special characters", "passw0rd!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), RegisterRequest{
				Username: "gamer",
				Email:    "gamer@example.com",
				Password: tt.password,
			})
			requireBadRequest(t, err,
				"Password must be at least 8 characters long and include at least one letter and one number")
		})
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	service := newValidationOnlyService()

	for _, email := range []string{"not-an-email", "a@b", "a b@c.com", "@example.com"} {
		_, err := service.Register(context.Background(), RegisterRequest{
			Username: "gamer",
			Email:    email,
			Password: "passw0rd",
		})
		requireBadRequest(t, err, "Invalid email format")
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	service := newValidationOnlyService()

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"both empty", LoginRequest{}},
		{"missing password", LoginRequest{Username: "gamer"}},
		{"missing username", LoginRequest{Password: "passw0rd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.req)
			requireBadRequest(t, err, "Username and password are required")
		})
	}
}
