//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lendkit/internal/domain/booking"
	"lendkit/internal/pkg/clock"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"
	"lendkit/tests/common/builder"
	queriesmock "lendkit/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type itemQueriesMocks struct {
	items    *queriesmock.MockItemReadStore
	bookings *queriesmock.MockBookingReadStore
	comments *queriesmock.MockCommentReadStore
	users    *queriesmock.MockUserReadStore
	clock    *clock.MockClock
}

func newItemQueries(t *testing.T, now time.Time) (queries.ItemQueries, itemQueriesMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := itemQueriesMocks{
		items:    queriesmock.NewMockItemReadStore(ctrl),
		bookings: queriesmock.NewMockBookingReadStore(ctrl),
		comments: queriesmock.NewMockCommentReadStore(ctrl),
		users:    queriesmock.NewMockUserReadStore(ctrl),
		clock:    clock.NewMockClock(now),
	}
	q := queries.NewItemQueries(m.items, m.bookings, m.comments, m.users, m.clock)
	return q, m
}

// =============================================================================
// GetByID Tests
// =============================================================================

func TestItemQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("owner gets the enriched view", func(t *testing.T) {
		ownerID := uuid.New()
		item := builder.NewItemBuilder().WithOwnerID(ownerID).BuildView()
		q, m := newItemQueries(t, now)
		stubUserExists(m.users, ownerID)
		m.items.EXPECT().FindByID(ctx, item.ID).Return(item, nil)
		m.comments.EXPECT().FindByItemID(ctx, item.ID).Return([]*queries.CommentView{}, nil)

		last := builder.NewBookingBuilder().
			WithItemID(item.ID).
			WithPeriod(now.Add(-72*time.Hour), now.Add(-48*time.Hour)).
			AsApproved().
			BuildView()
		next := builder.NewBookingBuilder().
			WithItemID(item.ID).
			WithPeriod(now.Add(24*time.Hour), now.Add(48*time.Hour)).
			BuildView()

		// Settled history first, then the upcoming lookup.
		gomock.InOrder(
			m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).DoAndReturn(
				func(_ context.Context, f queries.BookingFilter) ([]*queries.BookingView, error) {
					expected := queries.BookingFilter{
						ItemIDs:   []uuid.UUID{item.ID},
						Statuses:  []booking.Status{booking.StatusCanceled, booking.StatusApproved},
						EndBefore: &now,
						Sort:      queries.SortStartDesc,
						Limit:     1,
					}
					if diff := cmp.Diff(expected, f); diff != "" {
						t.Errorf("last booking filter mismatch (-want +got):\n%s", diff)
					}
					return []*queries.BookingView{last}, nil
				}),
			m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).DoAndReturn(
				func(_ context.Context, f queries.BookingFilter) ([]*queries.BookingView, error) {
					expected := queries.BookingFilter{
						ItemIDs:    []uuid.UUID{item.ID},
						StartAfter: &now,
						Sort:       queries.SortStartAsc,
						Limit:      1,
					}
					if diff := cmp.Diff(expected, f); diff != "" {
						t.Errorf("next booking filter mismatch (-want +got):\n%s", diff)
					}
					return []*queries.BookingView{next}, nil
				}),
		)

		detail, err := q.GetByID(ctx, ownerID, item.ID)
		require.NoError(t, err)
		require.NotNil(t, detail.LastBooking)
		require.NotNil(t, detail.NextBooking)
		assert.Equal(t, last.ID, detail.LastBooking.ID)
		assert.Equal(t, last.Booker.ID, detail.LastBooking.BookerID)
		assert.Equal(t, next.ID, detail.NextBooking.ID)
	})

	t.Run("owner falls back to the in-progress booking when no settled history exists", func(t *testing.T) {
		ownerID := uuid.New()
		item := builder.NewItemBuilder().WithOwnerID(ownerID).BuildView()
		q, m := newItemQueries(t, now)
		stubUserExists(m.users, ownerID)
		m.items.EXPECT().FindByID(ctx, item.ID).Return(item, nil)
		m.comments.EXPECT().FindByItemID(ctx, item.ID).Return([]*queries.CommentView{}, nil)

		inProgress := builder.NewBookingBuilder().
			WithItemID(item.ID).
			WithPeriod(now.Add(-time.Hour), now.Add(time.Hour)).
			AsApproved().
			BuildView()

		gomock.InOrder(
			// settled history: empty
			m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).Return([]*queries.BookingView{}, nil),
			// fallback: booking spanning now
			m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).DoAndReturn(
				func(_ context.Context, f queries.BookingFilter) ([]*queries.BookingView, error) {
					expected := queries.BookingFilter{
						ItemIDs:         []uuid.UUID{item.ID},
						StartAtOrBefore: &now,
						EndAtOrAfter:    &now,
						Sort:            queries.SortStartDesc,
						Limit:           1,
					}
					if diff := cmp.Diff(expected, f); diff != "" {
						t.Errorf("in-progress filter mismatch (-want +got):\n%s", diff)
					}
					return []*queries.BookingView{inProgress}, nil
				}),
			// next booking: none
			m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).Return([]*queries.BookingView{}, nil),
		)

		detail, err := q.GetByID(ctx, ownerID, item.ID)
		require.NoError(t, err)
		require.NotNil(t, detail.LastBooking)
		assert.Equal(t, inProgress.ID, detail.LastBooking.ID)
		assert.Nil(t, detail.NextBooking)
	})

	t.Run("non-owner sees an available idle item without booking info", func(t *testing.T) {
		item := builder.NewItemBuilder().BuildView()
		actorID := uuid.New()
		q, m := newItemQueries(t, now)
		stubUserExists(m.users, actorID)
		m.items.EXPECT().FindByID(ctx, item.ID).Return(item, nil)
		m.comments.EXPECT().FindByItemID(ctx, item.ID).Return([]*queries.CommentView{}, nil)
		// only the in-progress probe runs for non-owners
		m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).Return([]*queries.BookingView{}, nil)

		detail, err := q.GetByID(ctx, actorID, item.ID)
		require.NoError(t, err)
		assert.Nil(t, detail.LastBooking)
		assert.Nil(t, detail.NextBooking)
	})

	t.Run("non-owner cannot see an unavailable item", func(t *testing.T) {
		item := builder.NewItemBuilder().AsUnavailable().BuildView()
		actorID := uuid.New()
		q, m := newItemQueries(t, now)
		stubUserExists(m.users, actorID)
		m.items.EXPECT().FindByID(ctx, item.ID).Return(item, nil)
		m.comments.EXPECT().FindByItemID(ctx, item.ID).Return([]*queries.CommentView{}, nil)
		m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).Return([]*queries.BookingView{}, nil)

		_, err := q.GetByID(ctx, actorID, item.ID)
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("non-owner cannot see an item currently rented out", func(t *testing.T) {
		item := builder.NewItemBuilder().BuildView()
		actorID := uuid.New()
		q, m := newItemQueries(t, now)
		stubUserExists(m.users, actorID)
		m.items.EXPECT().FindByID(ctx, item.ID).Return(item, nil)
		m.comments.EXPECT().FindByItemID(ctx, item.ID).Return([]*queries.CommentView{}, nil)

		inProgress := builder.NewBookingBuilder().
			WithItemID(item.ID).
			WithPeriod(now.Add(-time.Hour), now.Add(time.Hour)).
			AsApproved().
			BuildView()
		m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).Return([]*queries.BookingView{inProgress}, nil)

		_, err := q.GetByID(ctx, actorID, item.ID)
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		actorID := uuid.New()
		itemID := uuid.New()
		q, m := newItemQueries(t, now)
		stubUserExists(m.users, actorID)
		m.items.EXPECT().FindByID(ctx, itemID).Return(nil, notFoundErr("item not found"))

		_, err := q.GetByID(ctx, actorID, itemID)
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}

// =============================================================================
// Search Tests
// =============================================================================

func TestItemQueries_Search(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	page := queries.Page{From: 0, Size: 20}

	t.Run("blank text short-circuits to an empty result", func(t *testing.T) {
		q, _ := newItemQueries(t, now)

		views, err := q.Search(ctx, "   ", page)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("text is lowercased before hitting the store", func(t *testing.T) {
		q, m := newItemQueries(t, now)
		item := builder.NewItemBuilder().BuildView()
		m.items.EXPECT().SearchAvailable(ctx, "drill", int32(20), int32(0)).
			Return([]*queries.ItemView{item}, nil)

		views, err := q.Search(ctx, " DRiLL ", page)
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("store failure", func(t *testing.T) {
		q, m := newItemQueries(t, now)
		m.items.EXPECT().SearchAvailable(ctx, "drill", int32(20), int32(0)).
			Return(nil, errDBConnectionLost)

		_, err := q.Search(ctx, "drill", page)
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}

// =============================================================================
// CommentEligible Tests
// =============================================================================

// Eligibility only asks for an elapsed booking window; the status is
// deliberately not part of the predicate.
func TestItemQueries_CommentEligible(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	authorID := uuid.New()
	itemID := uuid.New()

	t.Run("any finished booking qualifies", func(t *testing.T) {
		q, m := newItemQueries(t, now)
		finished := builder.NewBookingBuilder().
			WithItemID(itemID).
			WithBookerID(authorID).
			WithPeriod(now.Add(-48*time.Hour), now.Add(-24*time.Hour)).
			BuildView()

		m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, f queries.BookingFilter) ([]*queries.BookingView, error) {
				expected := queries.BookingFilter{
					BookerID:  &authorID,
					ItemIDs:   []uuid.UUID{itemID},
					EndBefore: &now,
					Sort:      queries.SortStartDesc,
					Limit:     1,
				}
				if diff := cmp.Diff(expected, f); diff != "" {
					t.Errorf("eligibility filter mismatch (-want +got):\n%s", diff)
				}
				assert.Nil(t, f.Statuses, "eligibility must not filter on status")
				return []*queries.BookingView{finished}, nil
			})

		eligible, err := q.CommentEligible(ctx, authorID, itemID)
		require.NoError(t, err)
		assert.True(t, eligible)
	})

	t.Run("no finished booking means not eligible", func(t *testing.T) {
		q, m := newItemQueries(t, now)
		m.bookings.EXPECT().FindFiltered(ctx, gomock.Any()).Return([]*queries.BookingView{}, nil)

		eligible, err := q.CommentEligible(ctx, authorID, itemID)
		require.NoError(t, err)
		assert.False(t, eligible)
	})
}
