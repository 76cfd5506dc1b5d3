package request

import "time"

type QuoteRequest struct {
	SlotDate    string `json:"slotDate" binding:"required,datetime=2006-01-02"`
	DurationMin int    `json:"durationMin" binding:"required,min=1"`
	GroupSize   string `json:"groupSize" binding:"required"`
	Location    string `json:"location" binding:"required"`
}

type CreateBookingRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone"`
	SlotDate    string  `json:"slotDate" binding:"required,datetime=2006-01-02"`
	SlotTime    string  `json:"slotTime" binding:"required"`
	DurationMin int     `json:"durationMin" binding:"required,min=1"`
	Location    string  `json:"location" binding:"required"`
	GroupSize   string  `json:"groupSize" binding:"required"`
	ServiceID   *string `json:"serviceId,omitempty"`
}

type CreateSlotRequest struct {
	SlotDate    string `json:"slotDate" binding:"required,datetime=2006-01-02"`
	SlotTime    string `json:"slotTime" binding:"required"`
	DurationMin int    `json:"durationMin" binding:"required,min=1"`
	SeatsTotal  int    `json:"seatsTotal" binding:"required,min=1"`
}

// ParseSlotDate is safe after binding: the datetime tag already validated the
// layout.
func ParseSlotDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
