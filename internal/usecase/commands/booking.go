package commands

import (
	"context"
	"time"

	"lendkit/internal/domain/booking"
	"lendkit/internal/infra"
	"lendkit/internal/pkg/clock"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	ItemID uuid.UUID
	Start  time.Time
	End    time.Time
}

type BookingCommands interface {
	Create(ctx context.Context, bookerID uuid.UUID, input CreateBookingInput) (*queries.BookingView, error)
	// Resolve applies the owner's approval decision. Only the item owner
	// may resolve; repeating an already applied decision is rejected,
	// while flipping a previous one is allowed.
	Resolve(ctx context.Context, ownerID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, bookingQueries queries.BookingQueries, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, bookerID uuid.UUID, input CreateBookingInput) (*queries.BookingView, error) {
	reads := uc.uow.CommandReads()

	if _, err := reads.UserByID(ctx, bookerID); err != nil {
		return nil, markRead(err, errs.ErrUserNotFound)
	}

	itemSnap, err := reads.ItemByID(ctx, input.ItemID)
	if err != nil {
		return nil, markRead(err, errs.ErrItemNotFound)
	}
	if !itemSnap.Available {
		return nil, errs.ErrItemUnavailable
	}
	if itemSnap.OwnerID == bookerID {
		return nil, errs.ErrSelfBooking
	}

	period, err := booking.NewPeriod(input.Start, input.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidPeriod)
	}

	entity := booking.NewBooking(input.ItemID, bookerID, period, uc.clock.Now())

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Bookings().Create(ctx, tx.DB(), entity)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write so the caller gets the enriched view
	return uc.bookingQueries.GetByIDSystem(ctx, createdID)
}

func (uc *bookingUseCaseImpl) Resolve(ctx context.Context, ownerID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error) {
	if _, err := uc.uow.CommandReads().UserByID(ctx, ownerID); err != nil {
		return nil, markRead(err, errs.ErrUserNotFound)
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if derr != nil {
			return markRead(derr, errs.ErrBookingNotFound)
		}
		if snap.ItemOwnerID != ownerID {
			// Hidden from non-owners rather than forbidden
			return errs.ErrNotAuthorized
		}

		entity, derr := reconstructFromSnapshot(snap)
		if derr != nil {
			return derr
		}
		if derr = entity.Resolve(approved); derr != nil {
			return errs.Mark(derr, errs.ErrSameStatusTransition)
		}

		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, entity.Status()); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func reconstructFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	period, err := booking.NewPeriod(snap.Start, snap.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidPeriod)
	}
	if !snap.Status.IsValid() {
		return nil, errs.Mark(booking.ErrInvalidStatus, errs.ErrDatabaseOperationFailed)
	}
	return booking.ReconstructBooking(snap.ID, snap.ItemID, snap.BookerID, period, snap.Status, snap.CreatedAt), nil
}

// markRead translates a read-store miss into the given domain sentinel
// and everything else into a database failure.
func markRead(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
