package response

import (
	"log/slog"
	"time"

	"hbot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	SlotDate        time.Time  `json:"slotDate"`
	SlotTime        string     `json:"slotTime"`
	DurationMin     int        `json:"durationMin"`
	Location        string     `json:"location"`
	GroupSize       string     `json:"groupSize"`
	ServiceID       *string    `json:"serviceId,omitempty"`
	UserID          *uuid.UUID `json:"userId,omitempty"`
	AmountCents     int64      `json:"amountCents"`
	PaymentIntentID *string    `json:"paymentIntentId,omitempty"`
	PaymentStatus   string     `json:"paymentStatus"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type CheckoutResponse struct {
	Booking      *BookingResponse `json:"booking"`
	ClientSecret string           `json:"clientSecret"`
}

type QuoteResponse struct {
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
}

type UnreconciledBookingResponse struct {
	BookingID       uuid.UUID `json:"bookingId"`
	UserID          uuid.UUID `json:"userId"`
	ServiceID       string    `json:"serviceId"`
	PaymentIntentID *string   `json:"paymentIntentId,omitempty"`
	CompletedAt     time.Time `json:"completedAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	if err := copier.Copy(&resp, rm); err != nil {
		slog.Error("failed to map booking view", "error", err)
	}
	return &resp
}

func FromUnreconciledView(rm *queries.UnreconciledBookingView) *UnreconciledBookingResponse {
	var resp UnreconciledBookingResponse
	if err := copier.Copy(&resp, rm); err != nil {
		slog.Error("failed to map unreconciled booking view", "error", err)
	}
	return &resp
}
