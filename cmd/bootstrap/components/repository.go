package components

import (
	"hbot-booking/internal/infra"
	"hbot-booking/internal/infra/db"
	repo_impl "hbot-booking/internal/infra/repository"
	"hbot-booking/internal/usecase/commands"
	"hbot-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			db.NewPgxTxManager,
			fx.As(new(infra.TxManager)),
		),
		fx.Annotate(
			repo_impl.NewSlotRepository,
			fx.As(new(commands.SlotRepository)),
			fx.As(new(commands.SlotAdminRepository)),
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			repo_impl.NewCreditRepository,
			fx.As(new(commands.CreditRepository)),
			fx.As(new(queries.CreditReadStore)),
		),
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}
