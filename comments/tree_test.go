package comments

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func row(id int, parent *int) Comment {
	return Comment{
		CommentID:       id,
		ParentCommentID: parent,
		Content:         "c",
		CreatedAt:       time.Date(2025, 1, 1, 0, 0, id, 0, time.UTC),
	}
}

func TestBuildTreeEmptyInput(t *testing.T) {
	require.Empty(t, BuildTree(nil))
	require.Empty(t, BuildTree([]Comment{}))
}

func TestBuildTreeFlatComments(t *testing.T) {
	tree := BuildTree([]Comment{row(1, nil), row(2, nil), row(3, nil)})
	require.Len(t, tree, 3)
	for i, node := range tree {
		require.Equal(t, i+1, node.CommentID)
		require.NotNil(t, node.Replies)
		require.Empty(t, node.Replies)
	}
}

func TestBuildTreeNestsReplies(t *testing.T) {
	tree := BuildTree([]Comment{row(1, nil), row(2, intp(1)), row(3, intp(2))})

	require.Len(t, tree, 1)
	require.Equal(t, 1, tree[0].CommentID)
	require.Len(t, tree[0].Replies, 1)
	require.Equal(t, 2, tree[0].Replies[0].CommentID)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	require.Equal(t, 3, tree[0].Replies[0].Replies[0].CommentID)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	// Parent 99 does not exist; the reply vanishes from the output.
	tree := BuildTree([]Comment{row(1, nil), row(2, intp(99))})

	require.Len(t, tree, 1)
	require.Equal(t, 1, tree[0].CommentID)
	require.Empty(t, tree[0].Replies)
}

func TestBuildTreeHandlesChildBeforeParent(t *testing.T) {
	// Attachment is by id registration, not input position.
	tree := BuildTree([]Comment{row(2, intp(1)), row(1, nil)})

	require.Len(t, tree, 1)
	require.Equal(t, 1, tree[0].CommentID)
	require.Len(t, tree[0].Replies, 1)
	require.Equal(t, 2, tree[0].Replies[0].CommentID)
}

func TestBuildTreePreservesReplyOrder(t *testing.T) {
	tree := BuildTree([]Comment{row(1, nil), row(2, intp(1)), row(3, intp(1)), row(4, intp(1))})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 3)
	for i, reply := range tree[0].Replies {
		require.Equal(t, i+2, reply.CommentID)
	}
}

func TestBuildTreeIsIdempotent(t *testing.T) {
	rows := []Comment{row(1, nil), row(2, intp(1)), row(3, nil), row(4, intp(99))}

	first, err := json.Marshal(BuildTree(rows))
	require.NoError(t, err)
	second, err := json.Marshal(BuildTree(rows))
	require.NoError(t, err)
	require.JSONEq(t, string(first), string(second))
}

func TestBuildTreeRepliesEncodeAsEmptyArray(t *testing.T) {
	out, err := json.Marshal(BuildTree([]Comment{row(1, nil)}))
	require.NoError(t, err)
	require.Contains(t, string(out), `"replies":[]`)
}
