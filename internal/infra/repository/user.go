package repository

import (
	"context"

	"lendkit/internal/domain/user"
	"lendkit/internal/infra"
	"lendkit/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`,
		u.ID(), u.Name(), u.Email().Value())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return u.ID(), nil
}

func (r *UserRepository) Update(ctx context.Context, dbtx db.DBTX, u *user.User) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE users SET name = $2, email = $3 WHERE id = $1`,
		u.ID(), u.Name(), u.Email().Value())
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
