package forum

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
	"github.com/user/vgdirect-go/comments"
)

// ForumHandler exposes forum post endpoints.
type ForumHandler struct {
	service  *ForumService
	comments *comments.CommentService
}

// NewForumHandler creates a ForumHandler.
func NewForumHandler(service *ForumService, commentService *comments.CommentService) *ForumHandler {
	return &ForumHandler{service: service, comments: commentService}
}

// RegisterRoutes mounts the forum routes.
func (h *ForumHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleListPosts)
	r.Post("/", h.handleCreatePost)
	r.Get("/search", h.handleSearchPosts)
	r.Get("/filter-by-genre", h.handleFilterByGenre)
	r.Get("/title/{title}", h.handleGetByTitle)
	r.Get("/created-by/{user_id}", h.handleListByAuthor)
	r.Get("/{post_id}/comments", h.handleListComments)
	r.Get("/{post_id}/comments/{comment_id}/replies", h.handleListReplies)
}

// handleListPosts godoc
// @Summary List forum posts
// @Description Returns all posts with genre tags and comment counts, busiest threads first.
// @Tags forum
// @Produce json
// @Success 200 {array} ForumPostSummary
// @Router /api/forum-posts [get]
func (h *ForumHandler) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, posts)
}

// handleCreatePost godoc
// @Summary Create a forum post
// @Description Creates a post and links the given genre ids to it.
// @Tags forum
// @Accept json
// @Produce json
// @Param request body NewForumPostRequest true "New post"
// @Success 201 {object} ForumPost
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/forum-posts [post]
func (h *ForumHandler) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req NewForumPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}
	if req.UserID == 0 || req.Title == "" || req.Body == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("user_id, title, and body are required.", nil))
		return
	}

	post, err := h.service.CreatePost(r.Context(), &req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, post)
}

// handleSearchPosts godoc
// @Summary Search forum posts
// @Description Case-insensitive substring match on post titles and bodies.
// @Tags forum
// @Produce json
// @Param query query string true "Search terms"
// @Success 200 {array} ForumPostSummary
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/forum-posts/search [get]
func (h *ForumHandler) handleSearchPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("query parameter is required.", nil))
		return
	}
	posts, err := h.service.SearchPosts(r.Context(), query)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, posts)
}

// handleFilterByGenre godoc
// @Summary Filter forum posts by genre
// @Tags forum
// @Produce json
// @Param genre query string true "Genre tag name"
// @Success 200 {array} ForumPostSummary
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/forum-posts/filter-by-genre [get]
func (h *ForumHandler) handleFilterByGenre(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("genre parameter is required.", nil))
		return
	}
	posts, err := h.service.FilterByGenre(r.Context(), genre)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, posts)
}

// handleGetByTitle godoc
// @Summary Get a forum post by title
// @Description Returns the post with that exact title plus its nested comment tree.
// @Tags forum
// @Produce json
// @Param title path string true "Post title"
// @Success 200 {object} ForumPostDetail
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/forum-posts/title/{title} [get]
func (h *ForumHandler) handleGetByTitle(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetByTitle(r.Context(), chi.URLParam(r, "title"))
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, detail)
}

// handleListByAuthor godoc
// @Summary List forum posts by author
// @Tags forum
// @Produce json
// @Param user_id path int true "Author user id"
// @Success 200 {array} ForumPostSummary
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/forum-posts/created-by/{user_id} [get]
func (h *ForumHandler) handleListByAuthor(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("user_id must be an integer.", nil))
		return
	}
	posts, err := h.service.ListByAuthor(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, posts)
}

// handleListComments godoc
// @Summary List comments on a forum post
// @Tags forum
// @Produce json
// @Param post_id path int true "Post id"
// @Success 200 {array} comments.Comment
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/forum-posts/{post_id}/comments [get]
func (h *ForumHandler) handleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "post_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("post_id must be an integer.", nil))
		return
	}
	rows, err := h.comments.ListByPost(r.Context(), postID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, rows)
}

// handleListReplies godoc
// @Summary List direct replies to a comment
// @Tags forum
// @Produce json
// @Param post_id path int true "Post id"
// @Param comment_id path int true "Parent comment id"
// @Success 200 {array} comments.Comment
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/forum-posts/{post_id}/comments/{comment_id}/replies [get]
func (h *ForumHandler) handleListReplies(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "post_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("post_id must be an integer.", nil))
		return
	}
	commentID, err := strconv.Atoi(chi.URLParam(r, "comment_id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("comment_id must be an integer.", nil))
		return
	}
	replies, err := h.comments.ListReplies(r.Context(), postID, commentID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, replies)
}
