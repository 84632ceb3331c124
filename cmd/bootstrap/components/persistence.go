package components

import (
	"lendkit/internal/infra/db"
	"lendkit/internal/infra/readstore"
	"lendkit/internal/infra/uow"
	"lendkit/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewItemReadStore,
			fx.As(new(queries.ItemReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewCommentReadStore,
			fx.As(new(queries.CommentReadStore)),
		),
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
