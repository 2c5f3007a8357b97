package forum

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/vgdirect-go/apperror"
	"github.com/user/vgdirect-go/comments"
)

// ForumService manages forum posts and their genre tags.
type ForumService struct {
	db       *pgxpool.Pool
	comments *comments.CommentService
}

// NewForumService creates a ForumService.
func NewForumService(db *pgxpool.Pool, commentService *comments.CommentService) *ForumService {
	return &ForumService{db: db, comments: commentService}
}

const summaryColumns = `
	p.post_id, p.user_id, p.game_id, p.title, p.body, p.created_at,
	ARRAY_REMOVE(ARRAY_AGG(DISTINCT g.name), NULL) AS tags,
	COUNT(DISTINCT c.comment_id) AS comment_count`

const summaryJoins = `
	FROM forum_posts p
	LEFT JOIN forum_post_genres fpg ON p.post_id = fpg.post_id
	LEFT JOIN genres g ON fpg.genre_id = g.genre_id
	LEFT JOIN comments c ON p.post_id = c.post_id`

func (s *ForumService) scanSummaries(rows pgx.Rows) ([]ForumPostSummary, error) {
	defer rows.Close()

	posts := make([]ForumPostSummary, 0)
	for rows.Next() {
		var post ForumPostSummary
		err := rows.Scan(
			&post.PostID, &post.UserID, &post.GameID, &post.Title, &post.Body,
			&post.CreatedAt, &post.Tags, &post.CommentCount,
		)
		if err != nil {
			log.Printf("forum: row scan failed: %v", err)
			return nil, apperror.NewDatabaseError("Server error", err)
		}
		if post.Tags == nil {
			post.Tags = []string{}
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		log.Printf("forum: rows iteration failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return posts, nil
}

// ListPosts returns every post with its tags and comment count, busiest
// threads first.
func (s *ForumService) ListPosts(ctx context.Context) ([]ForumPostSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT`+summaryColumns+summaryJoins+`
		 GROUP BY p.post_id
		 ORDER BY COUNT(DISTINCT c.comment_id) DESC, p.created_at DESC`)
	if err != nil {
		log.Printf("forum: list posts failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return s.scanSummaries(rows)
}

// CreatePost inserts a post and its genre links in one transaction.
func (s *ForumService) CreatePost(ctx context.Context, req *NewForumPostRequest) (*ForumPost, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("forum: begin tx failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	defer tx.Rollback(ctx)

	var post ForumPost
	err = tx.QueryRow(ctx,
		`INSERT INTO forum_posts (user_id, game_id, title, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING post_id, user_id, game_id, title, body, created_at`,
		req.UserID, req.GameID, req.Title, req.Body,
	).Scan(&post.PostID, &post.UserID, &post.GameID, &post.Title, &post.Body, &post.CreatedAt)
	if err != nil {
		log.Printf("forum: insert post failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}

	for _, genreID := range req.GenreIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO forum_post_genres (post_id, genre_id) VALUES ($1, $2)`,
			post.PostID, genreID)
		if err != nil {
			log.Printf("forum: link genre %d failed: %v", genreID, err)
			return nil, apperror.NewDatabaseError("Server error", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("forum: commit failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return &post, nil
}

// SearchPosts matches the query against titles and bodies,
// case-insensitively.
func (s *ForumService) SearchPosts(ctx context.Context, query string) ([]ForumPostSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT`+summaryColumns+summaryJoins+`
		 WHERE p.title ILIKE $1 OR p.body ILIKE $1
		 GROUP BY p.post_id
		 ORDER BY COUNT(DISTINCT c.comment_id) DESC, p.created_at DESC`,
		"%"+query+"%")
	if err != nil {
		log.Printf("forum: search posts failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return s.scanSummaries(rows)
}

// FilterByGenre returns posts carrying the named genre tag.
func (s *ForumService) FilterByGenre(ctx context.Context, genre string) ([]ForumPostSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT`+summaryColumns+summaryJoins+`
		 WHERE p.post_id IN (
		     SELECT fpg2.post_id FROM forum_post_genres fpg2
		     JOIN genres g2 ON fpg2.genre_id = g2.genre_id
		     WHERE g2.name = $1)
		 GROUP BY p.post_id
		 ORDER BY COUNT(DISTINCT c.comment_id) DESC, p.created_at DESC`,
		genre)
	if err != nil {
		log.Printf("forum: filter by genre failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return s.scanSummaries(rows)
}

// GetByTitle returns the post with that exact title plus its full comment
// tree.
func (s *ForumService) GetByTitle(ctx context.Context, title string) (*ForumPostDetail, error) {
	var post ForumPostSummary
	err := s.db.QueryRow(ctx,
		`SELECT`+summaryColumns+summaryJoins+`
		 WHERE p.title = $1
		 GROUP BY p.post_id`,
		title,
	).Scan(
		&post.PostID, &post.UserID, &post.GameID, &post.Title, &post.Body,
		&post.CreatedAt, &post.Tags, &post.CommentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Forum post not found", nil)
		}
		log.Printf("forum: fetch by title failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	tree, err := s.comments.TreeByPost(ctx, post.PostID)
	if err != nil {
		return nil, err
	}
	return &ForumPostDetail{Post: &post, Comments: tree}, nil
}

// ListByAuthor returns the posts a user created, newest first. An author
// with no posts yields an empty slice.
func (s *ForumService) ListByAuthor(ctx context.Context, userID int) ([]ForumPostSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT`+summaryColumns+summaryJoins+`
		 WHERE p.user_id = $1
		 GROUP BY p.post_id
		 ORDER BY p.created_at DESC`,
		userID)
	if err != nil {
		log.Printf("forum: list by author failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return s.scanSummaries(rows)
}
