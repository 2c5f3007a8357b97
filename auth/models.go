package auth

import "time"

// User represents a user row. HashedPassword is never serialized.
type User struct {
	UserID         int       `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// PublicUser is the subset of a user record safe to return to any caller.
type PublicUser struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Public returns the public-safe view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{UserID: u.UserID, Username: u.Username}
}
