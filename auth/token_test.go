package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	token, expiresAt, err := IssueToken(42, "alice", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, 42, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	// Issued already expired.
	token, _, err := IssueToken(7, "bob", testSecret, -time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	token, _, err := IssueToken(7, "bob", testSecret, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = VerifyToken(tampered, testSecret)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, err := IssueToken(7, "bob", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, "a-different-secret")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyGarbageToken(t *testing.T) {
	_, err := VerifyToken("not.a.real.token", testSecret)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsMissingIdentityClaims(t *testing.T) {
	// A structurally valid token without user_id/username is not an identity.
	token, _, err := IssueToken(0, "", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
