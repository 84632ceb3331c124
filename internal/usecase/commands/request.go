package commands

import (
	"context"

	"lendkit/internal/domain/request"
	"lendkit/internal/pkg/clock"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
)

type RequestCommands interface {
	Create(ctx context.Context, requesterID uuid.UUID, description string) (*queries.RequestView, error)
}

type requestUseCaseImpl struct {
	uow            shared.UnitOfWork
	requestQueries queries.RequestQueries
	clock          clock.Clock
}

func NewRequestUseCase(uow shared.UnitOfWork, requestQueries queries.RequestQueries, clk clock.Clock) RequestCommands {
	return &requestUseCaseImpl{
		uow:            uow,
		requestQueries: requestQueries,
		clock:          clk,
	}
}

func (uc *requestUseCaseImpl) Create(ctx context.Context, requesterID uuid.UUID, description string) (*queries.RequestView, error) {
	if _, err := uc.uow.CommandReads().UserByID(ctx, requesterID); err != nil {
		return nil, markRead(err, errs.ErrUserNotFound)
	}

	entity, err := request.NewRequest(requesterID, description, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Requests().Create(ctx, tx.DB(), entity)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.requestQueries.GetByID(ctx, requesterID, createdID)
}
