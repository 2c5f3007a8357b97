package users

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The profile endpoint exposes exactly username, email, and creation date.
func TestUserProfileResponseShape(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	body, err := json.Marshal(UserProfileResponse{
		Username:  "gamer",
		Email:     "gamer@example.com",
		CreatedAt: created,
	})
	require.NoError(t, err)
	require.JSONEq(t,
		`{"username":"gamer","email":"gamer@example.com","created_at":"2025-03-01T12:00:00Z"}`,
		string(body))
}

func strPtr(s string) *string { return &s }

func TestUpdateColumnsEmptyInput(t *testing.T) {
	require.Empty(t, updateColumns(nil, nil, nil))
}

func TestUpdateColumnsIgnoresEmptyStrings(t *testing.T) {
	require.Empty(t, updateColumns(strPtr(""), strPtr(""), strPtr("")))
}

func TestUpdateColumnsSingleField(t *testing.T) {
	got := updateColumns(nil, strPtr("new@example.com"), nil)
	require.Equal(t, []fieldUpdate{{column: "email", value: "new@example.com"}}, got)
}

func TestUpdateColumnsAllFieldsInFixedOrder(t *testing.T) {
	got := updateColumns(strPtr("newname"), strPtr("new@example.com"), strPtr("$2a$10$hash"))
	require.Equal(t, []fieldUpdate{
		{column: "username", value: "newname"},
		{column: "email", value: "new@example.com"},
		{column: "password_hash", value: "$2a$10$hash"},
	}, got)
}

func TestUpdateColumnsMixedPresence(t *testing.T) {
	got := updateColumns(strPtr("newname"), nil, strPtr("$2a$10$hash"))
	require.Equal(t, []fieldUpdate{
		{column: "username", value: "newname"},
		{column: "password_hash", value: "$2a$10$hash"},
	}, got)
}
