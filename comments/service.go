package comments

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/vgdirect-go/apperror"
)

// CommentService provides comment persistence and retrieval.
type CommentService struct {
	db *pgxpool.Pool
}

// NewCommentService creates a CommentService.
func NewCommentService(db *pgxpool.Pool) *CommentService {
	return &CommentService{db: db}
}

// CreateComment inserts a top-level comment authored by userID.
func (s *CommentService) CreateComment(ctx context.Context, postID, userID int, content string) (*Comment, error) {
	var c Comment
	err := s.db.QueryRow(ctx,
		`INSERT INTO comments (post_id, user_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING comment_id, post_id, user_id, content, created_at`,
		postID, userID, content,
	).Scan(&c.CommentID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt)
	if err != nil {
		log.Printf("comments: insert failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return &c, nil
}

// CreateReply inserts a reply under parentCommentID.
func (s *CommentService) CreateReply(ctx context.Context, postID, userID int, content string, parentCommentID int) (*Comment, error) {
	var c Comment
	err := s.db.QueryRow(ctx,
		`INSERT INTO comments (post_id, user_id, content, parent_comment_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING comment_id, post_id, user_id, content, parent_comment_id, created_at`,
		postID, userID, content, parentCommentID,
	).Scan(&c.CommentID, &c.PostID, &c.UserID, &c.Content, &c.ParentCommentID, &c.CreatedAt)
	if err != nil {
		log.Printf("comments: reply insert failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return &c, nil
}

// ListByPost returns every comment on a post joined with the author's
// username, ordered by creation time ascending. The flat ordering is the
// assembler's input contract.
func (s *CommentService) ListByPost(ctx context.Context, postID int) ([]Comment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT c.comment_id, c.parent_comment_id, c.content, c.user_id, c.created_at, u.username
		 FROM comments c
		 LEFT JOIN users u ON c.user_id = u.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at ASC`,
		postID,
	)
	if err != nil {
		log.Printf("comments: list by post failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.CommentID, &c.ParentCommentID, &c.Content, &c.UserID, &c.CreatedAt, &c.Username); err != nil {
			return nil, apperror.NewDatabaseError("Server error", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return out, nil
}

// TreeByPost returns a post's comments assembled into the nested reply view.
func (s *CommentService) TreeByPost(ctx context.Context, postID int) ([]*CommentNode, error) {
	flat, err := s.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildTree(flat), nil
}

// ListByUser returns a user's comments joined with forum post titles, newest
// first.
func (s *CommentService) ListByUser(ctx context.Context, userID int) ([]UserComment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT c.comment_id, c.post_id, c.parent_comment_id, c.content, c.created_at, fp.title AS post_title
		 FROM comments c
		 LEFT JOIN forum_posts fp ON c.post_id = fp.post_id
		 WHERE c.user_id = $1
		 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		log.Printf("comments: list by user failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	defer rows.Close()

	out := []UserComment{}
	for rows.Next() {
		var c UserComment
		if err := rows.Scan(&c.CommentID, &c.PostID, &c.ParentCommentID, &c.Content, &c.CreatedAt, &c.PostTitle); err != nil {
			return nil, apperror.NewDatabaseError("Server error", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return out, nil
}

// ListReplies returns the direct replies of one comment on a post, oldest
// first.
func (s *CommentService) ListReplies(ctx context.Context, postID, parentCommentID int) ([]Comment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT c.comment_id, c.parent_comment_id, c.content, c.user_id, c.created_at, u.username
		 FROM comments c
		 LEFT JOIN users u ON c.user_id = u.user_id
		 WHERE c.post_id = $1 AND c.parent_comment_id = $2
		 ORDER BY c.created_at ASC`,
		postID, parentCommentID,
	)
	if err != nil {
		log.Printf("comments: list replies failed: %v", err)
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.CommentID, &c.ParentCommentID, &c.Content, &c.UserID, &c.CreatedAt, &c.Username); err != nil {
			return nil, apperror.NewDatabaseError("Server error", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Server error", err)
	}
	return out, nil
}
