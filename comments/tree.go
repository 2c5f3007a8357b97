package comments

// BuildTree assembles flat comment rows, ordered by creation time ascending,
// into a forest of reply trees. Two passes: the first registers a node for
// every row so attachment does not depend on parents preceding children in
// the input; the second appends each node to its parent's replies, or to the
// root list when it has no parent.
//
// A reply whose parent_comment_id does not appear in rows is dropped from
// the output without error: it stays in the store but never surfaces in a
// response. Nesting depth is unbounded, and reply order within a parent
// follows input order.
func BuildTree(rows []Comment) []*CommentNode {
	nodes := make(map[int]*CommentNode, len(rows))
	for i := range rows {
		nodes[rows[i].CommentID] = &CommentNode{
			Comment: rows[i],
			Replies: []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0, len(rows))
	for i := range rows {
		node := nodes[rows[i].CommentID]
		if rows[i].ParentCommentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*rows[i].ParentCommentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return roots
}
