package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hbot-booking/internal/domain/booking"
	"hbot-booking/internal/domain/credit"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/pkg/clock"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/queries"
)

const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"
)

type ReconcileCommands interface {
	// HandleWebhook verifies the raw gateway payload and applies it to the
	// booking and credit ledgers. Replays and out-of-order deliveries are
	// no-ops; only the transition out of pending grants credits.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

type reconcileUseCaseImpl struct {
	verifier         WebhookVerifier
	bookingRepo      BookingRepository
	creditRepo       CreditRepository
	notificationRepo NotificationRepository
	db               infra.DBTX
	clock            clock.Clock
}

func NewReconcileUseCase(
	verifier WebhookVerifier,
	bookingRepo BookingRepository,
	creditRepo CreditRepository,
	notificationRepo NotificationRepository,
	db infra.DBTX,
	clock clock.Clock,
) ReconcileCommands {
	return &reconcileUseCaseImpl{
		verifier:         verifier,
		bookingRepo:      bookingRepo,
		creditRepo:       creditRepo,
		notificationRepo: notificationRepo,
		db:               db,
		clock:            clock,
	}
}

func (r *reconcileUseCaseImpl) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := r.verifier.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return errs.Mark(err, errs.ErrAuthenticationFailed)
	}

	switch event.Type {
	case eventIntentSucceeded:
		return r.handleSucceeded(ctx, event)
	case eventIntentFailed:
		return r.handleFailed(ctx, event)
	default:
		// Acknowledge event types we do not subscribe to so the gateway
		// stops retrying them.
		slog.Debug("ignoring webhook event", "event_id", event.ID, "type", event.Type)
		return nil
	}
}

// handleSucceeded completes the booking and, for credit-granting services
// bought by a known user, appends exactly one credit package. The pending
// guard on the status transition is what makes the grant exactly-once: a
// replayed event sees changed=false and returns before touching the ledger.
func (r *reconcileUseCaseImpl) handleSucceeded(ctx context.Context, event *GatewayEvent) error {
	view, err := r.bookingRepo.FindByIntentID(ctx, event.IntentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Intents created outside this service (dashboard tests,
			// other products on the same account) are not ours to track.
			slog.Warn("webhook for unknown payment intent", "event_id", event.ID, "intent_id", event.IntentID)
			return nil
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	changed, err := r.bookingRepo.MarkCompletedByIntent(ctx, r.db, event.IntentID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !changed {
		slog.Info("booking already terminal, ignoring event", "event_id", event.ID, "booking_id", view.ID)
		return nil
	}

	if err := r.grantCredits(ctx, event, view); err != nil {
		return err
	}

	view.PaymentStatus = booking.StatusCompleted.String()
	r.enqueueNotification(ctx, "booking_confirmed", view)
	return nil
}

func (r *reconcileUseCaseImpl) handleFailed(ctx context.Context, event *GatewayEvent) error {
	changed, err := r.bookingRepo.MarkFailedByIntent(ctx, r.db, event.IntentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("failure event for unknown payment intent", "event_id", event.ID, "intent_id", event.IntentID)
			return nil
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !changed {
		return nil
	}

	view, err := r.bookingRepo.FindByIntentID(ctx, event.IntentID)
	if err != nil {
		slog.Error("failed to load booking for failure notification", "intent_id", event.IntentID, "error", err)
		return nil
	}
	r.enqueueNotification(ctx, "payment_failed", view)
	return nil
}

func (r *reconcileUseCaseImpl) grantCredits(ctx context.Context, event *GatewayEvent, view *queries.BookingView) error {
	if view.ServiceID == nil || view.UserID == nil {
		return nil
	}
	rule, ok := credit.RuleFor(*view.ServiceID)
	if !ok {
		return nil
	}

	now := r.clock.Now()
	expiresAt := now.AddDate(0, 0, rule.ExpirationDays)
	pkg, err := credit.NewPackage(rule.CreditType, rule.PackageName, rule.Sessions, &expiresAt, now)
	if err != nil {
		return errs.Mark(err, errs.ErrInconsistent)
	}

	if err := r.creditRepo.Append(ctx, r.db, *view.UserID, view.ID, pkg); err != nil {
		// The booking is completed but the ledger is not. Surface a
		// non-2xx so the gateway retries, and leave the row visible to
		// the unreconciled sweep either way.
		slog.Error("credit grant failed after booking completion",
			"event_id", event.ID, "booking_id", view.ID, "user_id", *view.UserID, "error", err)
		return errs.Mark(err, errs.ErrInconsistent)
	}
	return nil
}

type notificationPayload struct {
	BookingID string    `json:"booking_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	SlotDate  time.Time `json:"slot_date"`
	SlotTime  string    `json:"slot_time"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
}

// enqueueNotification is log-and-continue: a lost email never blocks the
// money path.
func (r *reconcileUseCaseImpl) enqueueNotification(ctx context.Context, kind string, view *queries.BookingView) {
	payload, err := json.Marshal(notificationPayload{
		BookingID: view.ID.String(),
		Email:     view.Email,
		Name:      view.Name,
		SlotDate:  view.SlotDate,
		SlotTime:  view.SlotTime,
		Location:  view.Location,
		Status:    view.PaymentStatus,
	})
	if err != nil {
		slog.Error("failed to encode notification payload", "booking_id", view.ID, "error", err)
		return
	}
	if err := r.notificationRepo.CreateJob(ctx, r.db, kind, view.Email, payload, r.clock.Now()); err != nil {
		slog.Error("failed to enqueue notification", "booking_id", view.ID, "kind", kind, "error", err)
	}
}
