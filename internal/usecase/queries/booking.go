package queries

import (
	"context"

	"lendkit/internal/domain/booking"
	"lendkit/internal/infra"
	"lendkit/internal/pkg/clock"
	"lendkit/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindFiltered(ctx context.Context, f BookingFilter) ([]*BookingView, error)
}

type BookingQueries interface {
	// GetByID returns the booking, visible only to the booker or the
	// item owner.
	GetByID(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the actor check; used for read-after-write
	// inside the command side.
	GetByIDSystem(ctx context.Context, bookingID uuid.UUID) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, page Page) ([]*BookingView, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, page Page) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	items    ItemReadStore
	users    UserReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, items ItemReadStore, users UserReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		items:    items,
		users:    users,
		clock:    clk,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}

	if view.Booker.ID != actorID && view.Item.OwnerID != actorID {
		return nil, errs.ErrNotAuthorized
	}

	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, bookingID uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, page Page) ([]*BookingView, error) {
	if err := q.ensureUserExists(ctx, bookerID); err != nil {
		return nil, err
	}

	return q.listByState(ctx, BookingFilter{BookerID: &bookerID}, state, page)
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, page Page) ([]*BookingView, error) {
	if err := q.ensureUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	itemIDs, err := q.items.FindIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// An owner without items simply has no bookings to show.
	if len(itemIDs) == 0 {
		return []*BookingView{}, nil
	}

	return q.listByState(ctx, BookingFilter{ItemIDs: itemIDs}, state, page)
}

// listByState is the state dispatcher shared by both subjects: parse the
// logical state, derive its predicate for the current instant, scope it
// to the subject, and window the result most-recent-start-first.
func (q *bookingQueriesImpl) listByState(ctx context.Context, subject BookingFilter, state string, page Page) ([]*BookingView, error) {
	st, err := booking.ParseState(state)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUnknownState)
	}

	f := StateFilter(st, q.clock.Now())
	f.BookerID = subject.BookerID
	f.ItemIDs = subject.ItemIDs
	f.Sort = SortStartDesc
	f.Limit = page.Size
	f.Offset = page.From

	views, err := q.bookings.FindFiltered(ctx, f)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *bookingQueriesImpl) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrUserNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
