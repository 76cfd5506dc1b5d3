package components

import (
	"hbot-booking/internal/domain/pricing"
	"hbot-booking/internal/pkg/clock"
	"hbot-booking/internal/usecase/commands"
	"hbot-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func() *pricing.Engine {
		return pricing.NewEngine(pricing.ActivePromotions()...)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutUseCase,
		commands.NewReconcileUseCase,
		commands.NewScheduleUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewBookingQueries,
		queries.NewCreditQueries,
	),
)
