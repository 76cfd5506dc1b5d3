package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hbot-booking/internal/domain/booking"
	"hbot-booking/internal/domain/pricing"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	Name        string
	Email       string
	Phone       string
	SlotDate    time.Time
	SlotTime    string
	DurationMin int
	Location    string
	GroupSize   string
	ServiceID   *string
	UserID      *uuid.UUID // nil for guest checkout
}

type CheckoutResult struct {
	Booking      *queries.BookingView
	ClientSecret string
}

type CheckoutCommands interface {
	// Quote prices a prospective booking. Same engine instance as
	// CreateBooking, so the preview and the charge cannot diverge.
	Quote(durationMin int, groupSize, location string, day time.Time) int64
	CreateBooking(ctx context.Context, input CreateBookingInput) (*CheckoutResult, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
}

type checkoutUseCaseImpl struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	gateway     PaymentGateway
	priceEngine *pricing.Engine
	db          infra.DBTX
	txm         infra.TxManager
}

func NewCheckoutUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	priceEngine *pricing.Engine,
	db infra.DBTX,
	txm infra.TxManager,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		gateway:     gateway,
		priceEngine: priceEngine,
		db:          db,
		txm:         txm,
	}
}

func (c *checkoutUseCaseImpl) Quote(durationMin int, groupSize, location string, day time.Time) int64 {
	return c.priceEngine.Quote(durationMin, groupSize, location, day)
}

// CreateBooking reserves the seat and writes the booking row in one
// transaction, then creates the payment intent and binds it. A gateway
// failure rolls the reservation back (release + failed) so the seat is not
// stranded behind a checkout the user will simply retry.
func (c *checkoutUseCaseImpl) CreateBooking(ctx context.Context, input CreateBookingInput) (*CheckoutResult, error) {
	contact, err := booking.NewContact(input.Name, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}

	amount := c.priceEngine.Quote(input.DurationMin, input.GroupSize, input.Location, input.SlotDate)

	entity, err := booking.NewBooking(
		contact,
		input.SlotDate,
		input.SlotTime,
		input.DurationMin,
		input.Location,
		input.GroupSize,
		input.ServiceID,
		input.UserID,
		amount,
	)
	if err != nil {
		return nil, err
	}

	bookingID, err := c.reserveAndCreate(ctx, input, entity)
	if err != nil {
		return nil, err
	}

	intent, err := c.gateway.CreateIntent(ctx, amount, c.intentMetadata(bookingID, input))
	if err != nil {
		c.rollbackReservation(ctx, bookingID, input)
		return nil, errs.Mark(err, errs.ErrUpstreamFailure)
	}

	if err := c.bookingRepo.AttachPaymentIntent(ctx, c.db, bookingID, intent.ID); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errs.ErrIntentAlreadyAttached)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &CheckoutResult{
		Booking:      view,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (c *checkoutUseCaseImpl) reserveAndCreate(ctx context.Context, input CreateBookingInput, entity *booking.Booking) (uuid.UUID, error) {
	var bookingID uuid.UUID
	err := c.txm.WithinTx(ctx, func(tx infra.DBTX) error {
		if _, err := c.slotRepo.Reserve(ctx, tx, input.SlotDate, input.SlotTime); err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return errs.Mark(err, errs.ErrSlotNotFound)
			case infra.IsKind(err, infra.KindConflict):
				return errs.Mark(err, errs.ErrSlotExhausted)
			default:
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		id, err := c.bookingRepo.Create(ctx, tx, entity)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		bookingID = id
		return nil
	})
	if err != nil {
		// Begin/commit failures arrive unmarked.
		if !errors.Is(err, errs.ErrSlotNotFound) && !errors.Is(err, errs.ErrSlotExhausted) && !errors.Is(err, errs.ErrDatabaseOperationFailed) {
			err = errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return uuid.Nil, err
	}
	return bookingID, nil
}

// rollbackReservation is best effort: the seat release and the failed mark
// are both idempotent, and a miss here is caught by slot administration, not
// by the customer.
func (c *checkoutUseCaseImpl) rollbackReservation(ctx context.Context, bookingID uuid.UUID, input CreateBookingInput) {
	if _, err := c.bookingRepo.MarkFailedByID(ctx, c.db, bookingID); err != nil {
		slog.Error("failed to mark booking failed after gateway error", "booking_id", bookingID, "error", err)
	}
	if err := c.slotRepo.Release(ctx, c.db, input.SlotDate, input.SlotTime); err != nil {
		slog.Error("failed to release slot after gateway error", "booking_id", bookingID, "error", err)
	}
}

// CancelBooking is the release + mark-failed pair. Both halves are
// idempotent; a cancel racing a success webhook converges to whichever
// terminal state the store commits first.
func (c *checkoutUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	view, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrBookingNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	changed, err := c.bookingRepo.MarkFailedByID(ctx, c.db, bookingID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !changed {
		// Already terminal; nothing to release.
		return nil
	}

	if err := c.slotRepo.Release(ctx, c.db, view.SlotDate, view.SlotTime); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *checkoutUseCaseImpl) intentMetadata(bookingID uuid.UUID, input CreateBookingInput) map[string]string {
	metadata := map[string]string{
		"booking_id": bookingID.String(),
		"slot_date":  input.SlotDate.Format("2006-01-02"),
		"slot_time":  input.SlotTime,
	}
	if input.ServiceID != nil {
		metadata["service_id"] = *input.ServiceID
	}
	if input.UserID != nil {
		metadata["user_id"] = input.UserID.String()
	}
	return metadata
}
