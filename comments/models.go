// Package comments implements threaded comments on forum posts: creation of
// comments and replies, per-post listings assembled into a reply tree, and
// per-user listings.
package comments

import "time"

// Comment is a single comment row. ParentCommentID is nil for top-level
// comments; every other comment attaches under exactly one parent on the
// same post. Username is populated by listing queries that join users.
type Comment struct {
	CommentID       int       `json:"comment_id"`
	PostID          int       `json:"post_id,omitempty"`
	UserID          int       `json:"user_id"`
	ParentCommentID *int      `json:"parent_comment_id,omitempty"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	Username        *string   `json:"username,omitempty"`
}

// CommentNode is the derived read-only tree view: a comment plus its replies
// in creation order. Built fresh on every read, never persisted.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// UserComment is a comment in a per-user listing, joined with the title of
// the forum post it belongs to.
type UserComment struct {
	CommentID       int       `json:"comment_id"`
	PostID          int       `json:"post_id"`
	ParentCommentID *int      `json:"parent_comment_id,omitempty"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	PostTitle       *string   `json:"post_title,omitempty"`
}

// NewCommentRequest is the payload for posting a top-level comment.
type NewCommentRequest struct {
	PostID  int    `json:"post_id"`
	Content string `json:"content"`
}

// NewReplyRequest is the payload for replying to an existing comment.
type NewReplyRequest struct {
	PostID          int    `json:"post_id"`
	Content         string `json:"content"`
	ParentCommentID int    `json:"parent_comment_id"`
}
