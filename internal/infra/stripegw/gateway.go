package stripegw

import (
	"context"

	"hbot-booking/internal/pkg/config"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/commands"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Gateway adapts Stripe payment intents to the checkout port. Amounts are
// cents; metadata travels to the dashboard and back on webhook events.
type Gateway struct {
	currency string
}

func NewGateway(cfg config.StripeConfig) *Gateway {
	stripe.Key = cfg.SecretKey
	return &Gateway{currency: cfg.Currency}
}

func (g *Gateway) CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*commands.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(g.currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to create payment intent"), errs.ErrUpstreamFailure)
	}

	return &commands.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
