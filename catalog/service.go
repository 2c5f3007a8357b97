package catalog

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/vgdirect-go/apperror"
)

// CatalogService serves game records, fetching and caching them from the
// external catalog on first sight.
type CatalogService struct {
	db     *pgxpool.Pool
	client *Client
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(db *pgxpool.Pool, client *Client) *CatalogService {
	return &CatalogService{db: db, client: client}
}

const gameColumns = `game_id, rawg_id, title, description, platform, release_year, genre, developer, image_url`

func scanGame(row pgx.Row) (*Game, error) {
	var g Game
	err := row.Scan(
		&g.GameID, &g.RawgID, &g.Title, &g.Description, &g.Platform,
		&g.ReleaseYear, &g.Genre, &g.Developer, &g.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// EnsureGame returns the stored row for a RAWG id, fetching the game from
// the external catalog and inserting it if it is not cached yet.
func (s *CatalogService) EnsureGame(ctx context.Context, rawgID int) (*Game, error) {
	game, err := scanGame(s.db.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE rawg_id = $1`, rawgID))
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("catalog: game lookup failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	detail, err := s.client.FetchGame(ctx, rawgID)
	if err != nil {
		return nil, err
	}
	mapped := mapDetail(rawgID, detail)

	game, err = scanGame(s.db.QueryRow(ctx,
		`INSERT INTO games (rawg_id, title, description, platform, release_year, genre, developer, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (rawg_id) DO UPDATE SET title = EXCLUDED.title
		 RETURNING `+gameColumns,
		mapped.RawgID, mapped.Title, mapped.Description, mapped.Platform,
		mapped.ReleaseYear, mapped.Genre, mapped.Developer, mapped.ImageURL))
	if err != nil {
		log.Printf("catalog: game insert failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return game, nil
}

// LookupGameID resolves a RAWG id to the local game_id without touching the
// external catalog. Missing games are a not-found error.
func (s *CatalogService) LookupGameID(ctx context.Context, rawgID int) (int, error) {
	var gameID int
	err := s.db.QueryRow(ctx,
		`SELECT game_id FROM games WHERE rawg_id = $1`, rawgID).Scan(&gameID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("Game not found in the database", nil)
		}
		log.Printf("catalog: game id lookup failed: %v", err)
		return 0, apperror.NewDatabaseError("Server error", err)
	}
	return gameID, nil
}

// ListGames proxies a page of the external catalog.
func (s *CatalogService) ListGames(ctx context.Context, search string, page, pageSize int) (*ListResponse, error) {
	return s.client.FetchGames(ctx, search, page, pageSize)
}

// SearchGames proxies a catalog search, returning only the result entries.
func (s *CatalogService) SearchGames(ctx context.Context, query string) ([]GameSummary, error) {
	list, err := s.client.FetchGames(ctx, query, 0, 0)
	if err != nil {
		return nil, err
	}
	return list.Results, nil
}

// StoreSummary inserts a catalog list entry into the games table, leaving
// already-known games untouched. Reports whether a row was inserted.
func (s *CatalogService) StoreSummary(ctx context.Context, summary *GameSummary) (bool, error) {
	mapped := mapSummary(summary)
	tag, err := s.db.Exec(ctx,
		`INSERT INTO games (rawg_id, title, description, platform, release_year, genre, developer, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (rawg_id) DO NOTHING`,
		mapped.RawgID, mapped.Title, mapped.Description, mapped.Platform,
		mapped.ReleaseYear, mapped.Genre, mapped.Developer, mapped.ImageURL)
	if err != nil {
		return false, apperror.NewDatabaseError("Server error", err)
	}
	return tag.RowsAffected() > 0, nil
}
