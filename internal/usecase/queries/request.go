package queries

import (
	"context"

	"lendkit/internal/infra"
	"lendkit/internal/pkg/errs"

	"github.com/google/uuid"
)

type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*RequestView, error)
	// FindOthers returns requests created by anyone except the given
	// user, newest first.
	FindOthers(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*RequestView, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, actorID, requestID uuid.UUID) (*RequestView, error)
	ListForRequester(ctx context.Context, requesterID uuid.UUID) ([]*RequestView, error)
	ListAll(ctx context.Context, actorID uuid.UUID, page Page) ([]*RequestView, error)
}

type requestQueriesImpl struct {
	requests RequestReadStore
	items    ItemReadStore
	users    UserReadStore
}

func NewRequestQueries(requests RequestReadStore, items ItemReadStore, users UserReadStore) RequestQueries {
	return &requestQueriesImpl{requests: requests, items: items, users: users}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, actorID, requestID uuid.UUID) (*RequestView, error) {
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.requests.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.withItems(ctx, view)
}

func (q *requestQueriesImpl) ListForRequester(ctx context.Context, requesterID uuid.UUID) ([]*RequestView, error) {
	if err := q.ensureUserExists(ctx, requesterID); err != nil {
		return nil, err
	}

	views, err := q.requests.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.withItemsAll(ctx, views)
}

func (q *requestQueriesImpl) ListAll(ctx context.Context, actorID uuid.UUID, page Page) ([]*RequestView, error) {
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}

	views, err := q.requests.FindOthers(ctx, actorID, page.Size, page.From)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.withItemsAll(ctx, views)
}

func (q *requestQueriesImpl) withItems(ctx context.Context, view *RequestView) (*RequestView, error) {
	items, err := q.items.FindByRequestID(ctx, view.ID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view.Items = items
	return view, nil
}

func (q *requestQueriesImpl) withItemsAll(ctx context.Context, views []*RequestView) ([]*RequestView, error) {
	for _, v := range views {
		if _, err := q.withItems(ctx, v); err != nil {
			return nil, err
		}
	}
	if views == nil {
		views = []*RequestView{}
	}
	return views, nil
}

func (q *requestQueriesImpl) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrUserNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
