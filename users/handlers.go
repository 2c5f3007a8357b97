package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
)

// UserHandler exposes profile endpoints.
type UserHandler struct {
	service *UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(service *UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes mounts the profile routes. All of them require a valid
// token and only the profile owner may pass.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{username}", h.handleGetProfile)
	r.Put("/{username}", h.handleUpdateProfile)
}

// handleGetProfile godoc
// @Summary Get a user profile
// @Description Returns the authenticated user's own profile.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} UserProfileResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /api/users/{username} [get]
func (h *UserHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
		return
	}
	username := chi.URLParam(r, "username")
	if claims.Username != username {
		auth.WriteError(w, r, apperror.NewForbiddenError("You are not authorized to view this profile", nil))
		return
	}

	profile, err := h.service.GetProfile(r.Context(), username)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, profile)
}

// handleUpdateProfile godoc
// @Summary Update a user profile
// @Description Applies a partial update to the authenticated user's profile.
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body UpdateUserProfileRequest true "Fields to update"
// @Success 200 {object} UserProfileResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /api/users/{username} [put]
func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
		return
	}
	username := chi.URLParam(r, "username")
	if claims.Username != username {
		auth.WriteError(w, r, apperror.NewForbiddenError("You are not authorized to update this profile", nil))
		return
	}

	var req UpdateUserProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), username, &req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, profile)
}
