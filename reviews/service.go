package reviews

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/catalog"
)

const pgUniqueViolation = "23505"

// Review is a user's written review of a game.
type Review struct {
	ReviewID   int       `json:"review_id"`
	GameID     int       `json:"game_id"`
	UserID     int       `json:"user_id"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// GameReview is a review joined with its author, as listed per game.
type GameReview struct {
	ReviewID   int       `json:"review_id"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     int       `json:"user_id"`
	Username   string    `json:"username"`
}

// NewReviewRequest is the payload for posting a review. RawgID is the
// external catalog id of the game.
type NewReviewRequest struct {
	RawgID     int    `json:"rawg_id"`
	ReviewText string `json:"review_text"`
}

// CreatedReview is the response for a newly posted review.
type CreatedReview struct {
	Review   *Review `json:"review"`
	Username string  `json:"username"`
}

// ReviewService stores game reviews. Unlike ratings, reviews never pull
// games from the external catalog: reviewing an uncached game is an error.
type ReviewService struct {
	db      *pgxpool.Pool
	catalog *catalog.CatalogService
}

// NewReviewService creates a ReviewService.
func NewReviewService(db *pgxpool.Pool, catalogService *catalog.CatalogService) *ReviewService {
	return &ReviewService{db: db, catalog: catalogService}
}

// ListByGame returns all reviews for a game, joined with their authors.
func (s *ReviewService) ListByGame(ctx context.Context, rawgID int) ([]GameReview, error) {
	gameID, err := s.catalog.LookupGameID(ctx, rawgID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT r.review_id, r.review_text, r.created_at, u.user_id, u.username
		 FROM reviews r
		 JOIN users u ON r.user_id = u.user_id
		 WHERE r.game_id = $1`,
		gameID)
	if err != nil {
		log.Printf("reviews: list failed: %v", err)
		return nil, apperror.NewDatabaseError("Failed to fetch reviews", err)
	}
	defer rows.Close()

	out := make([]GameReview, 0)
	for rows.Next() {
		var review GameReview
		err := rows.Scan(&review.ReviewID, &review.ReviewText, &review.CreatedAt,
			&review.UserID, &review.Username)
		if err != nil {
			log.Printf("reviews: row scan failed: %v", err)
			return nil, apperror.NewDatabaseError("Failed to fetch reviews", err)
		}
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		log.Printf("reviews: rows iteration failed: %v", err)
		return nil, apperror.NewDatabaseError("Failed to fetch reviews", err)
	}
	return out, nil
}

// Create posts a review. Each user gets one review per game; a second
// attempt is rejected.
func (s *ReviewService) Create(ctx context.Context, userID int, username string, req *NewReviewRequest) (*CreatedReview, error) {
	if req.RawgID == 0 || req.ReviewText == "" {
		return nil, apperror.NewBadRequestError("rawg_id and review_text are required", nil)
	}

	gameID, err := s.catalog.LookupGameID(ctx, req.RawgID)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND game_id = $2)`,
		userID, gameID).Scan(&exists)
	if err != nil {
		log.Printf("reviews: duplicate check failed: %v", err)
		return nil, apperror.NewDatabaseError("Failed to add review", err)
	}
	if exists {
		return nil, apperror.NewBadRequestError(
			"You have already reviewed this game. Please edit your existing review.", nil)
	}

	var review Review
	err = s.db.QueryRow(ctx,
		`INSERT INTO reviews (game_id, user_id, review_text)
		 VALUES ($1, $2, $3)
		 RETURNING review_id, game_id, user_id, review_text, created_at`,
		gameID, userID, req.ReviewText,
	).Scan(&review.ReviewID, &review.GameID, &review.UserID, &review.ReviewText, &review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewBadRequestError(
				"You have already reviewed this game. Please edit your existing review.", nil)
		}
		log.Printf("reviews: insert failed: %v", err)
		return nil, apperror.NewDatabaseError("Failed to add review", err)
	}

	return &CreatedReview{Review: &review, Username: username}, nil
}
