package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	SlotDate        time.Time  `json:"slot_date"`
	SlotTime        string     `json:"slot_time"`
	DurationMin     int        `json:"duration_min"`
	Location        string     `json:"location"`
	GroupSize       string     `json:"group_size"`
	ServiceID       *string    `json:"service_id,omitempty"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	AmountCents     int64      `json:"amount_cents"`
	PaymentIntentID *string    `json:"payment_intent_id,omitempty"`
	PaymentStatus   string     `json:"payment_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type UnreconciledBookingView struct {
	BookingID       uuid.UUID `json:"booking_id"`
	UserID          uuid.UUID `json:"user_id"`
	ServiceID       string    `json:"service_id"`
	PaymentIntentID *string   `json:"payment_intent_id,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
}

type CreditBalanceView struct {
	Type          string `json:"type"`
	ActiveBalance int    `json:"active_balance"`
}
