package readstore

import (
	"context"

	"lendkit/internal/infra"
	"lendkit/internal/infra/db"
	"lendkit/internal/pkg/pgconv"
	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var v queries.UserView
	err := r.db.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindAll(ctx context.Context) ([]*queries.UserView, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query users", err)
	}
	defer rows.Close()

	result := []*queries.UserView{}
	for rows.Next() {
		var v queries.UserView
		if err := rows.Scan(&v.ID, &v.Name, &v.Email); err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate user rows", err)
	}
	return result, nil
}
