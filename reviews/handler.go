package reviews

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
)

// ReviewHandler exposes the review routes.
type ReviewHandler struct {
	service *ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(service *ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// RegisterPublicRoutes mounts the read-only review routes.
func (h *ReviewHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/{rawg_id}", h.handleListByGame)
}

// RegisterProtectedRoutes mounts routes behind the token middleware.
func (h *ReviewHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
}

// handleListByGame godoc
// @Summary List reviews for a game
// @Description Returns all reviews for a cached game, joined with their authors.
// @Tags reviews
// @Produce json
// @Param rawg_id path int true "RAWG game id"
// @Success 200 {array} GameReview
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/reviews/{rawg_id} [get]
func (h *ReviewHandler) handleListByGame(w http.ResponseWriter, r *http.Request) {
	rawgID, err := strconv.Atoi(chi.URLParam(r, "rawg_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("rawg_id must be an integer.", nil))
		return
	}

	reviews, err := h.service.ListByGame(r.Context(), rawgID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, reviews)
}

// handleCreate godoc
// @Summary Post a review
// @Description Posts the caller's review of a game. One review per user per game.
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body NewReviewRequest true "Review"
// @Success 201 {object} CreatedReview
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Security BearerAuth
// @Router /api/reviews [post]
func (h *ReviewHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
		return
	}

	var req NewReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}

	created, err := h.service.Create(r.Context(), claims.UserID, claims.Username, &req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, created)
}
