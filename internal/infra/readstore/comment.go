package readstore

import (
	"context"

	"lendkit/internal/infra"
	"lendkit/internal/infra/db"
	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentReadStore struct {
	db db.DBTX
}

func NewCommentReadStore(db db.DBTX) *CommentReadStore {
	return &CommentReadStore{db: db}
}

// FindByItemID returns an item's comments newest first.
func (r *CommentReadStore) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	rows, err := r.db.Query(ctx, `
SELECT c.id, c.item_id, c.text, u.name, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id = $1
ORDER BY c.created_at DESC`, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query comments by item", err)
	}
	defer rows.Close()

	result := []*queries.CommentView{}
	for rows.Next() {
		var v queries.CommentView
		if err := rows.Scan(&v.ID, &v.ItemID, &v.Text, &v.AuthorName, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate comment rows", err)
	}
	return result, nil
}
