package commands

import (
	"context"

	"lendkit/internal/domain/comment"
	"lendkit/internal/domain/item"
	"lendkit/internal/pkg/clock"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrItemNotOwned = errs.New("item not owned by user")

type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *uuid.UUID
}

type PatchItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (*queries.ItemView, error)
	Patch(ctx context.Context, actorID, itemID uuid.UUID, input PatchItemInput) (*queries.ItemView, error)
	AddComment(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error)
}

type itemUseCaseImpl struct {
	uow         shared.UnitOfWork
	items       queries.ItemReadStore
	itemQueries queries.ItemQueries
	clock       clock.Clock
}

func NewItemUseCase(uow shared.UnitOfWork, items queries.ItemReadStore, itemQueries queries.ItemQueries, clk clock.Clock) ItemCommands {
	return &itemUseCaseImpl{
		uow:         uow,
		items:       items,
		itemQueries: itemQueries,
		clock:       clk,
	}
}

func (uc *itemUseCaseImpl) Create(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (*queries.ItemView, error) {
	reads := uc.uow.CommandReads()

	if _, err := reads.UserByID(ctx, ownerID); err != nil {
		return nil, markRead(err, errs.ErrUserNotFound)
	}
	if input.RequestID != nil {
		if _, err := reads.RequestByID(ctx, *input.RequestID); err != nil {
			return nil, markRead(err, errs.ErrRequestNotFound)
		}
	}

	entity, err := item.NewItem(ownerID, input.Name, input.Description, input.Available, input.RequestID)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Items().Create(ctx, tx.DB(), entity)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.findItemView(ctx, createdID)
}

func (uc *itemUseCaseImpl) Patch(ctx context.Context, actorID, itemID uuid.UUID, input PatchItemInput) (*queries.ItemView, error) {
	reads := uc.uow.CommandReads()

	if _, err := reads.UserByID(ctx, actorID); err != nil {
		return nil, markRead(err, errs.ErrUserNotFound)
	}

	snap, err := reads.ItemByID(ctx, itemID)
	if err != nil {
		return nil, markRead(err, errs.ErrItemNotFound)
	}
	if snap.OwnerID != actorID {
		return nil, ErrItemNotOwned
	}

	entity := item.ReconstructItem(snap.ID, snap.OwnerID, snap.Name, snap.Description, snap.Available, snap.RequestID)
	if err = entity.Patch(input.Name, input.Description, input.Available); err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Items().Update(ctx, tx.DB(), entity); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.findItemView(ctx, itemID)
}

func (uc *itemUseCaseImpl) AddComment(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error) {
	reads := uc.uow.CommandReads()

	author, err := reads.UserByID(ctx, authorID)
	if err != nil {
		return nil, markRead(err, errs.ErrUserNotFound)
	}
	if _, err = reads.ItemByID(ctx, itemID); err != nil {
		return nil, markRead(err, errs.ErrItemNotFound)
	}

	commentText, err := comment.NewText(text)
	if err != nil {
		return nil, err
	}

	services := &comment.Services{
		Clock:       uc.clock,
		Eligibility: uc,
	}

	entity, err := comment.NewComment(services, authorID, itemID, commentText)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrCommentNotAllowed)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Comments().Create(ctx, tx.DB(), entity); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &queries.CommentView{
		ID:         entity.ID(),
		ItemID:     entity.ItemID(),
		Text:       entity.Text().String(),
		AuthorName: author.Name,
		CreatedAt:  entity.CreatedAt(),
	}, nil
}

// CanComment implements comment.EligibilityChecker on top of the read side.
func (uc *itemUseCaseImpl) CanComment(input comment.EligibilityInput) error {
	eligible, err := uc.itemQueries.CommentEligible(context.Background(), input.AuthorID, input.ItemID)
	if err != nil {
		return err
	}
	if !eligible {
		return comment.ErrBookingNotFinished
	}
	return nil
}

func (uc *itemUseCaseImpl) findItemView(ctx context.Context, itemID uuid.UUID) (*queries.ItemView, error) {
	view, err := uc.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, markRead(err, errs.ErrItemNotFound)
	}
	return view, nil
}
