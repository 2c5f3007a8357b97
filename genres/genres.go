package genres

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/auth"
)

// Genre is a forum post tag.
type Genre struct {
	GenreID int    `json:"genre_id"`
	Name    string `json:"name"`
}

// GenreService lists the genre catalog.
type GenreService struct {
	db *pgxpool.Pool
}

// NewGenreService creates a GenreService.
func NewGenreService(db *pgxpool.Pool) *GenreService {
	return &GenreService{db: db}
}

// ListGenres returns all genres in alphabetical order.
func (s *GenreService) ListGenres(ctx context.Context) ([]Genre, error) {
	rows, err := s.db.Query(ctx, `SELECT genre_id, name FROM genres ORDER BY name ASC`)
	if err != nil {
		log.Printf("genres: list failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	defer rows.Close()

	out := make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.GenreID, &g.Name); err != nil {
			log.Printf("genres: row scan failed: %v", err)
			return nil, apperror.NewDatabaseError("Server error", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		log.Printf("genres: rows iteration failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return out, nil
}

// GenreHandler exposes the genre routes.
type GenreHandler struct {
	service *GenreService
}

// NewGenreHandler creates a GenreHandler.
func NewGenreHandler(service *GenreService) *GenreHandler {
	return &GenreHandler{service: service}
}

// RegisterRoutes mounts the genre routes.
func (h *GenreHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleListGenres)
}

// handleListGenres godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {array} Genre
// @Router /api/genres [get]
func (h *GenreHandler) handleListGenres(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListGenres(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}
