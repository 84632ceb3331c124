package repository

import (
	"context"

	"lendkit/internal/domain/comment"
	"lendkit/internal/infra"
	"lendkit/internal/infra/db"

	"github.com/google/uuid"
)

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(ctx context.Context, dbtx db.DBTX, c *comment.Comment) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO comments (id, item_id, author_id, text, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID(), c.ItemID(), c.AuthorID(), c.Text().String(), c.CreatedAt())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create comment", err)
	}
	return c.ID(), nil
}
