package readstore

import (
	"context"

	"lendkit/internal/infra"
	"lendkit/internal/infra/db"
	"lendkit/internal/pkg/pgconv"
	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const itemSelect = `
SELECT id, owner_id, name, description, available, request_id
FROM items`

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(db db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: db}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row := r.db.QueryRow(ctx, itemSelect+" WHERE id = $1", id)

	view, err := scanItemView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return view, nil
}

func (r *ItemReadStore) FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM items WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query item IDs by owner", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan item ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item IDs", err)
	}
	return ids, nil
}

func (r *ItemReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx,
		itemSelect+` WHERE owner_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query items by owner", err)
	}
	defer rows.Close()

	return collectItemViews(rows)
}

// SearchAvailable matches name or description case-insensitively; the
// caller already lowercases and trims the text.
func (r *ItemReadStore) SearchAvailable(ctx context.Context, text string, limit, offset int32) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx,
		itemSelect+` WHERE available
		   AND (LOWER(name) LIKE '%' || $1 || '%' OR LOWER(description) LIKE '%' || $1 || '%')
		 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		text, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search items", err)
	}
	defer rows.Close()

	return collectItemViews(rows)
}

func (r *ItemReadStore) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx, itemSelect+` WHERE request_id = $1 ORDER BY created_at ASC`, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query items by request", err)
	}
	defer rows.Close()

	return collectItemViews(rows)
}

func collectItemViews(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*queries.ItemView, error) {
	result := []*queries.ItemView{}
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item rows", err)
	}
	return result, nil
}

func scanItemView(row rowScanner) (*queries.ItemView, error) {
	var (
		v         queries.ItemView
		requestID pgtype.UUID
	)
	err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Available, &requestID)
	if err != nil {
		return nil, err
	}
	v.RequestID = pgconv.UUIDPtrFromPgtype(requestID)
	return &v, nil
}
