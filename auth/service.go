package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/config"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// AuthService implements registration and login.
type AuthService struct {
	db  *pgxpool.Pool
	cfg config.AuthConfig
}

// NewAuthService creates an AuthService.
func NewAuthService(db *pgxpool.Pool, cfg config.AuthConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a new account and returns a freshly issued token plus
// the public view of the created user.
//
// The existence check below races with concurrent registrations; the unique
// constraints on users(username) and users(email) close that window, and a
// constraint violation from the insert maps to the same response as the
// check itself.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperror.NewBadRequestError("All fields are required", nil)
	}
	if !ValidPassword(req.Password) {
		return nil, apperror.NewBadRequestError(
			"Password must be at least 8 characters long and include at least one letter and one number", nil)
	}
	email := strings.ToLower(req.Email)
	if !ValidEmail(email) {
		return nil, apperror.NewBadRequestError("Invalid email format", nil)
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, req.Username,
	).Scan(&exists)
	if err != nil {
		log.Printf("register: existence check failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	if exists {
		return nil, apperror.NewBadRequestError("User already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperror.NewInternalError("Server error", err)
	}

	user := &User{Username: req.Username, Email: email, HashedPassword: string(hashed)}
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING user_id, created_at`,
		user.Username, user.Email, user.HashedPassword,
	).Scan(&user.UserID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewBadRequestError("User already exists", nil)
		}
		log.Printf("register: insert failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	token, _, err := IssueToken(user.UserID, user.Username, s.cfg.JWTSecret, s.cfg.TokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("Server error", err)
	}

	return &RegisterResponse{Token: token, User: user.Public()}, nil
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password produce byte-identical responses so the endpoint never
// confirms whether an account exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.NewBadRequestError("Username and password are required", nil)
	}

	user, err := s.getUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewBadRequestError("Invalid username or password", nil)
		}
		log.Printf("login: lookup failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewBadRequestError("Invalid username or password", nil)
	}

	token, _, err := IssueToken(user.UserID, user.Username, s.cfg.JWTSecret, s.cfg.TokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("Server error", err)
	}

	return &LoginResponse{Token: token}, nil
}

func (s *AuthService) getUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.QueryRow(ctx,
		`SELECT user_id, username, email, password_hash, created_at
		 FROM users WHERE username = $1`,
		username,
	).Scan(&user.UserID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
