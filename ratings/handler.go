package ratings

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
)

// RatingHandler exposes the rating routes.
type RatingHandler struct {
	service *RatingService
}

// NewRatingHandler creates a RatingHandler.
func NewRatingHandler(service *RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// RegisterProtectedRoutes mounts routes behind the token middleware.
func (h *RatingHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/", h.handleRate)
}

// RegisterPublicRoutes mounts the read-only rating routes.
func (h *RatingHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/{game_id}/average-rating", h.handleAverageRating)
	r.Get("/{game_id}/{user_id}", h.handleUserRating)
}

// handleRate godoc
// @Summary Rate a game
// @Description Adds or updates the caller's score for a game, identified by its RAWG id.
// @Tags ratings
// @Accept json
// @Produce json
// @Param request body RateRequest true "Rating"
// @Success 200 {object} map[string]Rating
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /api/ratings [post]
func (h *RatingHandler) handleRate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
		return
	}

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}

	rating, err := h.service.Rate(r.Context(), claims.UserID, &req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, map[string]*Rating{"rating": rating})
}

// handleAverageRating godoc
// @Summary Get a game's average rating
// @Tags ratings
// @Produce json
// @Param game_id path int true "RAWG game id"
// @Success 200 {object} map[string]float64
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/ratings/{game_id}/average-rating [get]
func (h *RatingHandler) handleAverageRating(w http.ResponseWriter, r *http.Request) {
	rawgID, err := strconv.Atoi(chi.URLParam(r, "game_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid game_id", nil))
		return
	}

	average, err := h.service.AverageRating(r.Context(), rawgID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, map[string]float64{"averageRating": average})
}

// handleUserRating godoc
// @Summary Get a user's rating for a game
// @Description Returns the user's score, or a null score when they have not rated the game.
// @Tags ratings
// @Produce json
// @Param game_id path int true "RAWG game id"
// @Param user_id path int true "User id"
// @Success 200 {object} map[string]int
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/ratings/{game_id}/{user_id} [get]
func (h *RatingHandler) handleUserRating(w http.ResponseWriter, r *http.Request) {
	rawgID, err := strconv.Atoi(chi.URLParam(r, "game_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid game_id or user_id", nil))
		return
	}
	userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid game_id or user_id", nil))
		return
	}

	score, err := h.service.UserRating(r.Context(), rawgID, userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, map[string]*int{"score": score})
}
