package commands

import (
	"context"

	"lendkit/internal/domain/user"
	"lendkit/internal/infra"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateUserInput struct {
	Name  string
	Email string
}

type PatchUserInput struct {
	Name  *string
	Email *string
}

type UserCommands interface {
	Create(ctx context.Context, input CreateUserInput) (*queries.UserView, error)
	Patch(ctx context.Context, userID uuid.UUID, input PatchUserInput) (*queries.UserView, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userUseCaseImpl struct {
	uow         shared.UnitOfWork
	userQueries queries.UserQueries
}

func NewUserUseCase(uow shared.UnitOfWork, userQueries queries.UserQueries) UserCommands {
	return &userUseCaseImpl{uow: uow, userQueries: userQueries}
}

func (uc *userUseCaseImpl) Create(ctx context.Context, input CreateUserInput) (*queries.UserView, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	entity, err := user.NewUser(input.Name, email)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Users().Create(ctx, tx.DB(), entity)
		if derr != nil {
			return markWrite(derr)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.userQueries.GetByID(ctx, createdID)
}

func (uc *userUseCaseImpl) Patch(ctx context.Context, userID uuid.UUID, input PatchUserInput) (*queries.UserView, error) {
	snap, err := uc.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		return nil, markRead(err, errs.ErrUserNotFound)
	}

	currentEmail, err := user.NewEmail(snap.Email)
	if err != nil {
		return nil, err
	}
	entity := user.ReconstructUser(snap.ID, snap.Name, currentEmail)

	var newEmail *user.Email
	if input.Email != nil {
		email, eerr := user.NewEmail(*input.Email)
		if eerr != nil {
			return nil, eerr
		}
		newEmail = &email
	}
	if err = entity.Patch(input.Name, newEmail); err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Users().Update(ctx, tx.DB(), entity); derr != nil {
			return markWrite(derr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.userQueries.GetByID(ctx, userID)
}

func (uc *userUseCaseImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := uc.uow.CommandReads().UserByID(ctx, userID); err != nil {
		return markRead(err, errs.ErrUserNotFound)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Users().Delete(ctx, tx.DB(), userID); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// markWrite surfaces a unique-email violation as the duplicate sentinel.
func markWrite(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return errs.Mark(err, errs.ErrDuplicateEmail)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
