package repository

import (
	"context"

	"lendkit/internal/domain/item"
	"lendkit/internal/infra"
	"lendkit/internal/infra/db"
	"lendkit/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ItemRepository struct{}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

func (r *ItemRepository) Create(ctx context.Context, dbtx db.DBTX, it *item.Item) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO items (id, owner_id, name, description, available, request_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID(), it.OwnerID(), it.Name(), it.Description(), it.Available(),
		pgconv.UUIDPtrToPgtype(it.RequestID()))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create item", err)
	}
	return it.ID(), nil
}

func (r *ItemRepository) Update(ctx context.Context, dbtx db.DBTX, it *item.Item) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE items SET name = $2, description = $3, available = $4 WHERE id = $1`,
		it.ID(), it.Name(), it.Description(), it.Available())
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}
