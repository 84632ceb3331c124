package queries

import (
	"context"

	"lendkit/internal/infra"
	"lendkit/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindAll(ctx context.Context) ([]*UserView, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
}

type userQueriesImpl struct {
	users UserReadStore
}

func NewUserQueries(users UserReadStore) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	view, err := q.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	views, err := q.users.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
