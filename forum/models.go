package forum

import (
	"time"

	"github.com/user/vgdirect-go/comments"
)

// ForumPost is a row of the forum_posts table.
type ForumPost struct {
	PostID    int       `json:"post_id"`
	UserID    int       `json:"user_id"`
	GameID    *int      `json:"game_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ForumPostSummary is a post with its aggregated genre tags and comment
// count, as returned by the listing and search endpoints.
type ForumPostSummary struct {
	ForumPost
	Tags         []string `json:"tags"`
	CommentCount int      `json:"comment_count"`
}

// ForumPostDetail is a single post with its full comment tree.
type ForumPostDetail struct {
	Post     *ForumPostSummary       `json:"post"`
	Comments []*comments.CommentNode `json:"comments"`
}

// NewForumPostRequest is the payload for creating a post.
type NewForumPostRequest struct {
	UserID   int    `json:"user_id"`
	GameID   *int   `json:"game_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	GenreIDs []int  `json:"genre_ids"`
}
