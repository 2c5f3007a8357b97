package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
)

const pgUniqueViolation = "23505"

// UserService provides profile reads and updates.
type UserService struct {
	db         *pgxpool.Pool
	bcryptCost int
}

// NewUserService creates a UserService.
func NewUserService(db *pgxpool.Pool, bcryptCost int) *UserService {
	return &UserService{db: db, bcryptCost: bcryptCost}
}

// GetProfile returns the public profile for a username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*UserProfileResponse, error) {
	var profile UserProfileResponse
	err := s.db.QueryRow(ctx,
		`SELECT username, email, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&profile.Username, &profile.Email, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		log.Printf("users: profile lookup failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return &profile, nil
}

// fieldUpdate is one (column, value) pair of a dynamic SET clause.
type fieldUpdate struct {
	column string
	value  string
}

// updateColumns maps the optional field set to SET-clause pairs. Pure:
// password hashing happens before this point. Order is fixed so generated
// SQL is deterministic.
func updateColumns(newUsername, email, passwordHash *string) []fieldUpdate {
	var out []fieldUpdate
	if newUsername != nil && *newUsername != "" {
		out = append(out, fieldUpdate{column: "username", value: *newUsername})
	}
	if email != nil && *email != "" {
		out = append(out, fieldUpdate{column: "email", value: *email})
	}
	if passwordHash != nil && *passwordHash != "" {
		out = append(out, fieldUpdate{column: "password_hash", value: *passwordHash})
	}
	return out
}

// UpdateProfile applies a partial update to the user identified by username.
// An empty field set is rejected; unique violations on the new username or
// email surface as conflicts.
func (s *UserService) UpdateProfile(ctx context.Context, username string, req *UpdateUserProfileRequest) (*UserProfileResponse, error) {
	if req.Email == nil && req.Password == nil && req.NewUsername == nil {
		return nil, apperror.NewBadRequestError("No fields to update. Please provide at least one field to update.", nil)
	}
	if req.Email != nil && !auth.ValidEmail(*req.Email) {
		return nil, apperror.NewBadRequestError("Invalid email format. Please provide a valid email address.", nil)
	}

	var passwordHash *string
	if req.Password != nil && *req.Password != "" {
		if !auth.ValidPassword(*req.Password) {
			return nil, apperror.NewBadRequestError(
				"Password must be at least 8 characters long and include at least one letter and one number", nil)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, apperror.NewInternalError("Server error", err)
		}
		h := string(hashed)
		passwordHash = &h
	}

	updates := updateColumns(req.NewUsername, req.Email, passwordHash)
	if len(updates) == 0 {
		return nil, apperror.NewBadRequestError("No fields to update. Please provide at least one field to update.", nil)
	}

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	for i, u := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", u.column, i+1))
		args = append(args, u.value)
	}
	args = append(args, username)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE username = $%d
		 RETURNING username, email, created_at`,
		strings.Join(setClauses, ", "), len(args),
	)

	var profile UserProfileResponse
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&profile.Username, &profile.Email, &profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("Username or email already exists", nil)
		}
		log.Printf("users: profile update failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	return &profile, nil
}
