// Package users implements profile management: reading and updating the
// authenticated user's own record.
package users

import "time"

// UserProfileResponse is the owner's view of a profile: username, email,
// and creation date only. The password hash is never part of any response.
type UserProfileResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateUserProfileRequest carries an explicit optional field set for a
// partial profile update. A nil field is left untouched; at least one field
// must be present.
type UpdateUserProfileRequest struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	NewUsername *string `json:"newUsername,omitempty"`
}
