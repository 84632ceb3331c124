//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"lendkit/internal/domain/comment"
	"lendkit/internal/pkg/clock"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/commands"
	"lendkit/internal/usecase/shared"
	"lendkit/tests/common/builder"
	queriesmock "lendkit/tests/mock/queries"
	sharedmock "lendkit/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type itemCommandMocks struct {
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	reads       *sharedmock.MockCommandReads
	items       *sharedmock.MockItemRepository
	comments    *sharedmock.MockCommentRepository
	itemStore   *queriesmock.MockItemReadStore
	itemQueries *queriesmock.MockItemQueries
	clock       *clock.MockClock
}

func newItemCommands(t *testing.T, now time.Time) (commands.ItemCommands, itemCommandMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := itemCommandMocks{
		uow:         sharedmock.NewMockUnitOfWork(ctrl),
		tx:          sharedmock.NewMockTx(ctrl),
		reads:       sharedmock.NewMockCommandReads(ctrl),
		items:       sharedmock.NewMockItemRepository(ctrl),
		comments:    sharedmock.NewMockCommentRepository(ctrl),
		itemStore:   queriesmock.NewMockItemReadStore(ctrl),
		itemQueries: queriesmock.NewMockItemQueries(ctrl),
		clock:       clock.NewMockClock(now),
	}
	m.uow.EXPECT().CommandReads().Return(m.reads).AnyTimes()
	m.tx.EXPECT().Items().Return(m.items).AnyTimes()
	m.tx.EXPECT().Comments().Return(m.comments).AnyTimes()
	m.tx.EXPECT().DB().Return(nil).AnyTimes()
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		}).AnyTimes()

	uc := commands.NewItemUseCase(m.uow, m.itemStore, m.itemQueries, m.clock)
	return uc, m
}

// =============================================================================
// Create Tests
// =============================================================================

func TestItemCommands_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		b := builder.NewItemBuilder()
		uc, m := newItemCommands(t, now)
		m.reads.EXPECT().UserByID(ctx, b.OwnerID).Return(&shared.UserSnapshot{ID: b.OwnerID}, nil)
		m.items.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(b.ID, nil)
		m.itemStore.EXPECT().FindByID(ctx, b.ID).Return(b.BuildView(), nil)

		view, err := uc.Create(ctx, b.OwnerID, b.BuildCreateInput())
		require.NoError(t, err)
		assert.Equal(t, b.ID, view.ID)
		assert.Equal(t, b.OwnerID, view.OwnerID)
	})

	t.Run("answering an unknown request", func(t *testing.T) {
		requestID := uuid.New()
		b := builder.NewItemBuilder().WithRequestID(requestID)
		uc, m := newItemCommands(t, now)
		m.reads.EXPECT().UserByID(ctx, b.OwnerID).Return(&shared.UserSnapshot{ID: b.OwnerID}, nil)
		m.reads.EXPECT().RequestByID(ctx, requestID).Return(nil, notFoundErr("request not found"))

		_, err := uc.Create(ctx, b.OwnerID, b.BuildCreateInput())
		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})

	t.Run("unknown owner", func(t *testing.T) {
		b := builder.NewItemBuilder()
		uc, m := newItemCommands(t, now)
		m.reads.EXPECT().UserByID(ctx, b.OwnerID).Return(nil, notFoundErr("user not found"))

		_, err := uc.Create(ctx, b.OwnerID, b.BuildCreateInput())
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

// =============================================================================
// Patch Tests
// =============================================================================

func TestItemCommands_Patch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("owner updates availability", func(t *testing.T) {
		b := builder.NewItemBuilder()
		uc, m := newItemCommands(t, now)
		m.reads.EXPECT().UserByID(ctx, b.OwnerID).Return(&shared.UserSnapshot{ID: b.OwnerID}, nil)
		m.reads.EXPECT().ItemByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)
		m.items.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).Return(nil)

		updated := builder.NewItemBuilder().WithID(b.ID).WithOwnerID(b.OwnerID).AsUnavailable()
		m.itemStore.EXPECT().FindByID(ctx, b.ID).Return(updated.BuildView(), nil)

		available := false
		view, err := uc.Patch(ctx, b.OwnerID, b.ID, commands.PatchItemInput{Available: &available})
		require.NoError(t, err)
		assert.False(t, view.Available)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		b := builder.NewItemBuilder()
		stranger := uuid.New()
		uc, m := newItemCommands(t, now)
		m.reads.EXPECT().UserByID(ctx, stranger).Return(&shared.UserSnapshot{ID: stranger}, nil)
		m.reads.EXPECT().ItemByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)

		name := "New name"
		_, err := uc.Patch(ctx, stranger, b.ID, commands.PatchItemInput{Name: &name})
		assert.ErrorIs(t, err, commands.ErrItemNotOwned)
	})

	t.Run("missing item", func(t *testing.T) {
		itemID := uuid.New()
		actorID := uuid.New()
		uc, m := newItemCommands(t, now)
		m.reads.EXPECT().UserByID(ctx, actorID).Return(&shared.UserSnapshot{ID: actorID}, nil)
		m.reads.EXPECT().ItemByID(ctx, itemID).Return(nil, notFoundErr("item not found"))

		name := "New name"
		_, err := uc.Patch(ctx, actorID, itemID, commands.PatchItemInput{Name: &name})
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}

// =============================================================================
// AddComment Tests
// =============================================================================

func TestItemCommands_AddComment(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	authorID := uuid.New()

	setup := func(m itemCommandMocks, b *builder.ItemBuilder) {
		m.reads.EXPECT().UserByID(ctx, authorID).
			Return(&shared.UserSnapshot{ID: authorID, Name: "Alice"}, nil).AnyTimes()
		m.reads.EXPECT().ItemByID(ctx, b.ID).Return(b.BuildSnapshot(), nil).AnyTimes()
	}

	t.Run("author with finished booking comments", func(t *testing.T) {
		b := builder.NewItemBuilder()
		uc, m := newItemCommands(t, now)
		setup(m, b)
		m.itemQueries.EXPECT().CommentEligible(gomock.Any(), authorID, b.ID).Return(true, nil)
		m.comments.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, c *comment.Comment) (uuid.UUID, error) {
				assert.Equal(t, "Great drill", c.Text().String())
				return c.ID(), nil
			})

		view, err := uc.AddComment(ctx, authorID, b.ID, "Great drill")
		require.NoError(t, err)
		assert.Equal(t, "Great drill", view.Text)
		assert.Equal(t, "Alice", view.AuthorName)
		assert.Equal(t, b.ID, view.ItemID)
	})

	t.Run("author without finished booking is rejected", func(t *testing.T) {
		b := builder.NewItemBuilder()
		uc, m := newItemCommands(t, now)
		setup(m, b)
		m.itemQueries.EXPECT().CommentEligible(gomock.Any(), authorID, b.ID).Return(false, nil)

		_, err := uc.AddComment(ctx, authorID, b.ID, "Great drill")
		assert.ErrorIs(t, err, errs.ErrCommentNotAllowed)
	})

	t.Run("blank text is rejected before the eligibility check", func(t *testing.T) {
		b := builder.NewItemBuilder()
		uc, m := newItemCommands(t, now)
		setup(m, b)

		_, err := uc.AddComment(ctx, authorID, b.ID, "   ")
		assert.ErrorIs(t, err, comment.ErrEmptyText)
	})

	t.Run("missing item", func(t *testing.T) {
		itemID := uuid.New()
		uc, m := newItemCommands(t, now)
		m.reads.EXPECT().UserByID(ctx, authorID).Return(&shared.UserSnapshot{ID: authorID}, nil)
		m.reads.EXPECT().ItemByID(ctx, itemID).Return(nil, notFoundErr("item not found"))

		_, err := uc.AddComment(ctx, authorID, itemID, "Great drill")
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}
