package slot

import (
	"errors"
	"time"
)

var ErrInvalidCapacity = errors.New("invalid slot capacity")

// ScheduleSlot is a calendar date/time with finite concurrent capacity,
// identified by (date, time label). Seats decrease only through a successful
// reservation and increase only through an explicit release or an
// administrative reset.
type ScheduleSlot struct {
	date           time.Time
	timeLabel      string
	durationMin    int
	seatsTotal     int
	seatsAvailable int
}

func NewScheduleSlot(date time.Time, timeLabel string, durationMin, seatsTotal int) (*ScheduleSlot, error) {
	if seatsTotal <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &ScheduleSlot{
		date:           date,
		timeLabel:      timeLabel,
		durationMin:    durationMin,
		seatsTotal:     seatsTotal,
		seatsAvailable: seatsTotal,
	}, nil
}

func ReconstructScheduleSlot(date time.Time, timeLabel string, durationMin, seatsTotal, seatsAvailable int) (*ScheduleSlot, error) {
	if seatsAvailable < 0 || seatsAvailable > seatsTotal {
		return nil, ErrInvalidCapacity
	}
	return &ScheduleSlot{
		date:           date,
		timeLabel:      timeLabel,
		durationMin:    durationMin,
		seatsTotal:     seatsTotal,
		seatsAvailable: seatsAvailable,
	}, nil
}

func (s *ScheduleSlot) HasCapacity() bool {
	return s.seatsAvailable > 0
}

func (s *ScheduleSlot) Date() time.Time     { return s.date }
func (s *ScheduleSlot) TimeLabel() string   { return s.timeLabel }
func (s *ScheduleSlot) DurationMin() int    { return s.durationMin }
func (s *ScheduleSlot) SeatsTotal() int     { return s.seatsTotal }
func (s *ScheduleSlot) SeatsAvailable() int { return s.seatsAvailable }
