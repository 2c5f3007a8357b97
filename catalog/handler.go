package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
)

// CatalogHandler exposes the game catalog routes.
type CatalogHandler struct {
	service *CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(service *CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterGameRoutes mounts the /api/games routes.
func (h *CatalogHandler) RegisterGameRoutes(r chi.Router) {
	r.Get("/", h.handleListGames)
	r.Get("/{id}", h.handleGetGame)
}

// RegisterSearchRoutes mounts the /api/search routes.
func (h *CatalogHandler) RegisterSearchRoutes(r chi.Router) {
	r.Get("/", h.handleSearchGames)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// handleListGames godoc
// @Summary Browse the game catalog
// @Description Proxies a page of the external game catalog.
// @Tags games
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(40)
// @Success 200 {object} ListResponse
// @Failure 502 {object} apperror.ErrorResponse
// @Router /api/games [get]
func (h *CatalogHandler) handleListGames(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 40)

	list, err := h.service.ListGames(r.Context(), search, page, pageSize)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}

// handleGetGame godoc
// @Summary Get a game by RAWG id
// @Description Returns the stored game, fetching and caching it from the external catalog on first request.
// @Tags games
// @Produce json
// @Param id path int true "RAWG game id"
// @Success 200 {object} Game
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 502 {object} apperror.ErrorResponse
// @Router /api/games/{id} [get]
func (h *CatalogHandler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	rawgID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("id must be an integer.", nil))
		return
	}

	game, err := h.service.EnsureGame(r.Context(), rawgID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, game)
}

// handleSearchGames godoc
// @Summary Search the game catalog
// @Tags games
// @Produce json
// @Param query query string true "Search terms"
// @Success 200 {array} GameSummary
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 502 {object} apperror.ErrorResponse
// @Router /api/search [get]
func (h *CatalogHandler) handleSearchGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		auth.WriteError(w, r, apperror.NewBadRequestError("Query parameter is required", nil))
		return
	}

	results, err := h.service.SearchGames(r.Context(), query)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, results)
}
