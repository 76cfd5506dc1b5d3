package stripegw

import (
	"hbot-booking/internal/pkg/config"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/commands"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Verifier checks webhook signatures against the shared endpoint secret and
// flattens the Stripe envelope into the gateway-neutral event the
// reconciliation engine consumes.
type Verifier struct {
	signingSecret string
}

func NewVerifier(cfg config.StripeConfig) *Verifier {
	return &Verifier{signingSecret: cfg.WebhookSecret}
}

func (v *Verifier) VerifyEvent(payload []byte, signatureHeader string) (*commands.GatewayEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, v.signingSecret)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "invalid webhook signature"), errs.ErrAuthenticationFailed)
	}

	return &commands.GatewayEvent{
		ID:       event.ID,
		Type:     string(event.Type),
		IntentID: objectID(event),
	}, nil
}

// objectID pulls the payment intent id out of the event payload. Events for
// other object kinds simply yield an empty id and are acknowledged upstream.
func objectID(event stripe.Event) string {
	if event.Data == nil {
		return ""
	}
	id, _ := event.Data.Object["id"].(string)
	return id
}
