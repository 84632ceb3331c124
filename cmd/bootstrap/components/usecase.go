package components

import (
	"lendkit/internal/pkg/clock"
	"lendkit/internal/usecase/commands"
	"lendkit/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewItemQueries,
		queries.NewBookingQueries,
		queries.NewRequestQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewUserUseCase,
		commands.NewItemUseCase,
		commands.NewBookingUseCase,
		commands.NewRequestUseCase,
	),
)
