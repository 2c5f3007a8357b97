package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
)

// CommentHandler exposes the CommentService over HTTP.
type CommentHandler struct {
	service *CommentService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(service *CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// RegisterProtectedRoutes registers the routes that require authentication.
func (h *CommentHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/", h.handleCreateComment)
	r.Post("/reply", h.handleCreateReply)
}

// RegisterPublicRoutes registers the unauthenticated read routes.
func (h *CommentHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/{post_id}", h.handleGetPostComments)
	r.Get("/user/{user_id}", h.handleGetUserComments)
}

// handleCreateComment godoc
// @Summary Post a comment on a forum post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentBody body comments.NewCommentRequest true "Comment details"
// @Success 201 {object} comments.Comment
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Router /api/comments [post]
func (h *CommentHandler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
		return
	}

	var req NewCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.PostID == 0 || req.Content == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("post_id and content are required.", nil))
		return
	}

	comment, err := h.service.CreateComment(r.Context(), req.PostID, claims.UserID, req.Content)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, comment)
}

// handleCreateReply godoc
// @Summary Post a reply to an existing comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param replyBody body comments.NewReplyRequest true "Reply details"
// @Success 201 {object} comments.Comment
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Router /api/comments/reply [post]
func (h *CommentHandler) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("Authentication required", nil))
		return
	}

	var req NewReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}
	defer r.Body.Close()

	if req.PostID == 0 || req.Content == "" || req.ParentCommentID == 0 {
		auth.WriteError(w, r, apperror.NewBadRequestError("post_id, content, and parent_comment_id are required.", nil))
		return
	}

	reply, err := h.service.CreateReply(r.Context(), req.PostID, claims.UserID, req.Content, req.ParentCommentID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, reply)
}

// handleGetPostComments godoc
// @Summary Get the nested comment tree for a forum post
// @Tags comments
// @Produce json
// @Param post_id path int true "Forum post ID"
// @Success 200 {array} comments.CommentNode
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/comments/{post_id} [get]
func (h *CommentHandler) handleGetPostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "post_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("post_id must be an integer", err))
		return
	}

	tree, err := h.service.TreeByPost(r.Context(), postID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, tree)
}

// handleGetUserComments godoc
// @Summary Get all comments made by a user
// @Tags comments
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} comments.UserComment
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/comments/user/{user_id} [get]
func (h *CommentHandler) handleGetUserComments(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("user_id must be an integer", err))
		return
	}

	list, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}
