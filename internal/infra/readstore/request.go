package readstore

import (
	"context"

	"lendkit/internal/infra"
	"lendkit/internal/infra/db"
	"lendkit/internal/pkg/pgconv"
	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
)

const requestSelect = `
SELECT id, requester_id, description, created_at
FROM requests`

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(db db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: db}
}

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	row := r.db.QueryRow(ctx, requestSelect+" WHERE id = $1", id)

	view, err := scanRequestView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}
	return view, nil
}

func (r *RequestReadStore) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*queries.RequestView, error) {
	rows, err := r.db.Query(ctx,
		requestSelect+` WHERE requester_id = $1 ORDER BY created_at DESC`, requesterID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query requests by requester", err)
	}
	defer rows.Close()

	return collectRequestViews(rows)
}

func (r *RequestReadStore) FindOthers(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.RequestView, error) {
	rows, err := r.db.Query(ctx,
		requestSelect+` WHERE requester_id <> $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query other users' requests", err)
	}
	defer rows.Close()

	return collectRequestViews(rows)
}

func collectRequestViews(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*queries.RequestView, error) {
	result := []*queries.RequestView{}
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request rows", err)
	}
	return result, nil
}

func scanRequestView(row rowScanner) (*queries.RequestView, error) {
	var v queries.RequestView
	if err := row.Scan(&v.ID, &v.RequesterID, &v.Description, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
