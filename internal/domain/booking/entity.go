package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrIntentAlreadyAttached = errors.New("payment intent already attached")
	ErrAlreadyTerminal       = errors.New("booking is in a terminal state")
)

// Booking is the record of intent for one reservation attempt. It is created
// pending, bound to exactly one payment intent, and driven to a terminal
// state by the reconciliation flow. Rows are never hard-deleted.
type Booking struct {
	id              uuid.UUID
	contact         Contact
	slotDate        time.Time
	slotTime        string
	durationMin     int
	location        string
	groupSize       string
	serviceID       *string
	userID          *uuid.UUID
	amountCents     int64
	paymentIntentID *string
	paymentStatus   PaymentStatus
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBooking(
	contact Contact,
	slotDate time.Time,
	slotTime string,
	durationMin int,
	location string,
	groupSize string,
	serviceID *string,
	userID *uuid.UUID,
	amountCents int64,
) (*Booking, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}

	return &Booking{
		id:            uuid.New(),
		contact:       contact,
		slotDate:      slotDate,
		slotTime:      slotTime,
		durationMin:   durationMin,
		location:      location,
		groupSize:     groupSize,
		serviceID:     serviceID,
		userID:        userID,
		amountCents:   amountCents,
		paymentStatus: StatusPending,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	contact Contact,
	slotDate time.Time,
	slotTime string,
	durationMin int,
	location, groupSize string,
	serviceID *string,
	userID *uuid.UUID,
	amountCents int64,
	paymentIntentID *string,
	status PaymentStatus,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		contact:         contact,
		slotDate:        slotDate,
		slotTime:        slotTime,
		durationMin:     durationMin,
		location:        location,
		groupSize:       groupSize,
		serviceID:       serviceID,
		userID:          userID,
		amountCents:     amountCents,
		paymentIntentID: paymentIntentID,
		paymentStatus:   status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// AttachPaymentIntent binds the gateway intent id, at most once. Attaching
// the same id twice is a no-op; a different id is rejected.
func (b *Booking) AttachPaymentIntent(intentID string) error {
	if b.paymentIntentID != nil {
		if *b.paymentIntentID == intentID {
			return nil
		}
		return ErrIntentAlreadyAttached
	}
	b.paymentIntentID = &intentID
	return nil
}

// MarkCompleted transitions to completed. The bool reports whether the state
// actually changed; a replayed event on a completed booking changes nothing.
func (b *Booking) MarkCompleted() (bool, error) {
	return b.transitionTo(StatusCompleted)
}

func (b *Booking) MarkFailed() (bool, error) {
	return b.transitionTo(StatusFailed)
}

func (b *Booking) transitionTo(next PaymentStatus) (bool, error) {
	if b.paymentStatus == next {
		return false, nil
	}
	if !b.paymentStatus.CanTransitionTo(next) {
		return false, ErrAlreadyTerminal
	}
	b.paymentStatus = next
	return true, nil
}

func (b *Booking) IsTerminal() bool {
	return b.paymentStatus.IsTerminal()
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Contact() Contact             { return b.contact }
func (b *Booking) SlotDate() time.Time          { return b.slotDate }
func (b *Booking) SlotTime() string             { return b.slotTime }
func (b *Booking) DurationMin() int             { return b.durationMin }
func (b *Booking) Location() string             { return b.location }
func (b *Booking) GroupSize() string            { return b.groupSize }
func (b *Booking) ServiceID() *string           { return b.serviceID }
func (b *Booking) UserID() *uuid.UUID           { return b.userID }
func (b *Booking) AmountCents() int64           { return b.amountCents }
func (b *Booking) PaymentIntentID() *string     { return b.paymentIntentID }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
