package ratings

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/catalog"
)

// Rating is a user's score for a game.
type Rating struct {
	GameID int `json:"game_id"`
	UserID int `json:"user_id"`
	Score  int `json:"score"`
}

// RateRequest is the payload for adding or updating a rating. GameID is
// the external RAWG id, not the local games row id.
type RateRequest struct {
	GameID int `json:"game_id"`
	Score  int `json:"score"`
}

// validScore reports whether a score is inside the 1..10 scale.
func validScore(score int) bool {
	return score >= 1 && score <= 10
}

// RatingService stores game ratings. Games are addressed by RAWG id and
// resolved through the catalog, which caches unseen games on demand.
type RatingService struct {
	db      *pgxpool.Pool
	catalog *catalog.CatalogService
}

// NewRatingService creates a RatingService.
func NewRatingService(db *pgxpool.Pool, catalogService *catalog.CatalogService) *RatingService {
	return &RatingService{db: db, catalog: catalogService}
}

// Rate inserts or updates the user's score for a game.
func (s *RatingService) Rate(ctx context.Context, userID int, req *RateRequest) (*Rating, error) {
	if req.GameID == 0 || req.Score == 0 {
		return nil, apperror.NewBadRequestError("game_id and score are required.", nil)
	}
	if !validScore(req.Score) {
		return nil, apperror.NewBadRequestError("Score must be a valid number between 1 and 10.", nil)
	}

	game, err := s.catalog.EnsureGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	var rating Rating
	err = s.db.QueryRow(ctx,
		`INSERT INTO ratings (game_id, user_id, score)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (game_id, user_id)
		 DO UPDATE SET score = EXCLUDED.score, created_at = CURRENT_TIMESTAMP
		 RETURNING game_id, user_id, score`,
		game.GameID, userID, req.Score,
	).Scan(&rating.GameID, &rating.UserID, &rating.Score)
	if err != nil {
		log.Printf("ratings: upsert failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return &rating, nil
}

// AverageRating returns the mean score for a game, rounded to two decimal
// places. An unrated game averages to zero.
func (s *RatingService) AverageRating(ctx context.Context, rawgID int) (float64, error) {
	game, err := s.catalog.EnsureGame(ctx, rawgID)
	if err != nil {
		return 0, err
	}

	var average *float64
	err = s.db.QueryRow(ctx,
		`SELECT ROUND(AVG(score)::numeric, 2) FROM ratings WHERE game_id = $1`,
		game.GameID,
	).Scan(&average)
	if err != nil {
		log.Printf("ratings: average failed: %v", err)
		return 0, apperror.NewDatabaseError("Server error", err)
	}
	if average == nil {
		return 0, nil
	}
	return *average, nil
}

// UserRating returns the user's score for a game, or nil if they have not
// rated it.
func (s *RatingService) UserRating(ctx context.Context, rawgID, userID int) (*int, error) {
	game, err := s.catalog.EnsureGame(ctx, rawgID)
	if err != nil {
		return nil, err
	}

	var score int
	err = s.db.QueryRow(ctx,
		`SELECT score FROM ratings WHERE game_id = $1 AND user_id = $2`,
		game.GameID, userID,
	).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		log.Printf("ratings: user rating lookup failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return &score, nil
}
