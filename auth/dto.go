// Package auth handles authentication and authorization: the token codec,
// the bearer-token middleware, and the registration/login service.
package auth

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" example:"newuser"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"abcd1234"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" example:"newuser"`
	Password string `json:"password" example:"abcd1234"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string `json:"token"`
}
