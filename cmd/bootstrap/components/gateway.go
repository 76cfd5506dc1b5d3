package components

import (
	"hbot-booking/internal/infra/stripegw"
	"hbot-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			stripegw.NewGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			stripegw.NewVerifier,
			fx.As(new(commands.WebhookVerifier)),
		),
	),
)
