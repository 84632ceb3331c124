//go:build unit

package commands_test

import (
	"context"
	"testing"

	"lendkit/internal/domain/user"
	"lendkit/internal/infra"
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

type userCommandMocks struct {
	uow     *sharedmock.MockUnitOfWork
	tx      *sharedmock.MockTx
	reads   *sharedmock.MockCommandReads
	users   *sharedmock.MockUserRepository
	queries *queriesmock.MockUserQueries
}

func newUserCommands(t *testing.T) (commands.UserCommands, userCommandMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := userCommandMocks{
		uow:     sharedmock.NewMockUnitOfWork(ctrl),
		tx:      sharedmock.NewMockTx(ctrl),
		reads:   sharedmock.NewMockCommandReads(ctrl),
		users:   sharedmock.NewMockUserRepository(ctrl),
		queries: queriesmock.NewMockUserQueries(ctrl),
	}
	m.uow.EXPECT().CommandReads().Return(m.reads).AnyTimes()
	m.tx.EXPECT().Users().Return(m.users).AnyTimes()
	m.tx.EXPECT().DB().Return(nil).AnyTimes()
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, m.tx)
		}).AnyTimes()

	uc := commands.NewUserUseCase(m.uow, m.queries)
	return uc, m
}

func duplicateKeyErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}

// =============================================================================
// Create Tests
// =============================================================================

func TestUserCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		b := builder.NewUserBuilder()
		uc, m := newUserCommands(t)
		m.users.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, u *user.User) (uuid.UUID, error) {
				assert.Equal(t, b.Name, u.Name())
				assert.Equal(t, b.Email, u.Email().Value())
				return b.ID, nil
			})
		m.queries.EXPECT().GetByID(ctx, b.ID).Return(b.BuildView(), nil)

		view, err := uc.Create(ctx, b.BuildCreateInput())
		require.NoError(t, err)
		assert.Equal(t, b.Email, view.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		b := builder.NewUserBuilder().WithEmail("not-an-email")
		uc, _ := newUserCommands(t)

		_, err := uc.Create(ctx, b.BuildCreateInput())
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})

	t.Run("duplicate email", func(t *testing.T) {
		b := builder.NewUserBuilder()
		uc, m := newUserCommands(t)
		m.users.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).
			Return(uuid.Nil, duplicateKeyErr("duplicate email"))

		_, err := uc.Create(ctx, b.BuildCreateInput())
		assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})
}

// =============================================================================
// Patch Tests
// =============================================================================

func TestUserCommands_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("name only", func(t *testing.T) {
		b := builder.NewUserBuilder()
		uc, m := newUserCommands(t)
		m.reads.EXPECT().UserByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)
		m.users.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, u *user.User) error {
				assert.Equal(t, "Bob", u.Name())
				assert.Equal(t, b.Email, u.Email().Value(), "email must stay untouched")
				return nil
			})
		m.queries.EXPECT().GetByID(ctx, b.ID).Return(b.WithName("Bob").BuildView(), nil)

		name := "Bob"
		view, err := uc.Patch(ctx, b.ID, commands.PatchUserInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Bob", view.Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		userID := uuid.New()
		uc, m := newUserCommands(t)
		m.reads.EXPECT().UserByID(ctx, userID).Return(nil, notFoundErr("user not found"))

		name := "Bob"
		_, err := uc.Patch(ctx, userID, commands.PatchUserInput{Name: &name})
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("duplicate email on update", func(t *testing.T) {
		b := builder.NewUserBuilder()
		uc, m := newUserCommands(t)
		m.reads.EXPECT().UserByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)
		m.users.EXPECT().Update(ctx, gomock.Any(), gomock.Any()).
			Return(duplicateKeyErr("duplicate email"))

		email := "taken@example.com"
		_, err := uc.Patch(ctx, b.ID, commands.PatchUserInput{Email: &email})
		assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})
}

// =============================================================================
// Delete Tests
// =============================================================================

func TestUserCommands_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		b := builder.NewUserBuilder()
		uc, m := newUserCommands(t)
		m.reads.EXPECT().UserByID(ctx, b.ID).Return(b.BuildSnapshot(), nil)
		m.users.EXPECT().Delete(ctx, gomock.Any(), b.ID).Return(nil)

		err := uc.Delete(ctx, b.ID)
		require.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		userID := uuid.New()
		uc, m := newUserCommands(t)
		m.reads.EXPECT().UserByID(ctx, userID).Return(nil, notFoundErr("user not found"))

		err := uc.Delete(ctx, userID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
