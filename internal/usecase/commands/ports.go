package commands

import (
	"context"
	"time"

	"hbot-booking/internal/domain/booking"
	"hbot-booking/internal/domain/credit"
	"hbot-booking/internal/domain/slot"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotRepository interface {
	Reserve(ctx context.Context, db infra.DBTX, date time.Time, timeLabel string) (int, error)
	Release(ctx context.Context, db infra.DBTX, date time.Time, timeLabel string) error
}

// SlotAdminRepository is the operator-facing half of slot persistence.
type SlotAdminRepository interface {
	CreateSlot(ctx context.Context, db infra.DBTX, s *slot.ScheduleSlot) error
}

type BookingRepository interface {
	Create(ctx context.Context, db infra.DBTX, b *booking.Booking) (uuid.UUID, error)
	AttachPaymentIntent(ctx context.Context, db infra.DBTX, bookingID uuid.UUID, intentID string) error
	MarkCompletedByIntent(ctx context.Context, db infra.DBTX, intentID string) (bool, error)
	MarkFailedByIntent(ctx context.Context, db infra.DBTX, intentID string) (bool, error)
	MarkFailedByID(ctx context.Context, db infra.DBTX, bookingID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	FindByIntentID(ctx context.Context, intentID string) (*queries.BookingView, error)
}

type CreditRepository interface {
	Append(ctx context.Context, db infra.DBTX, userID, bookingID uuid.UUID, pkg credit.Package) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, db infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

// PaymentIntent is the gateway's handle for one checkout attempt. The client
// secret goes to the browser; the id stays bound to the booking.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*PaymentIntent, error)
}

// GatewayEvent is the signature-verified, gateway-neutral webhook envelope.
type GatewayEvent struct {
	ID       string
	Type     string
	IntentID string
}

type WebhookVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (*GatewayEvent, error)
}
