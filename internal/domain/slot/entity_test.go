//go:build unit

package slot_test

import (
	"testing"
	"time"

	"hbot-booking/internal/domain/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleSlot(t *testing.T) {
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("opens with every seat available", func(t *testing.T) {
		s, err := slot.NewScheduleSlot(date, "10:00", 60, 3)
		require.NoError(t, err)

		assert.Equal(t, 3, s.SeatsTotal())
		assert.Equal(t, 3, s.SeatsAvailable())
		assert.True(t, s.HasCapacity())
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := slot.NewScheduleSlot(date, "10:00", 60, 0)
		assert.ErrorIs(t, err, slot.ErrInvalidCapacity)

		_, err = slot.NewScheduleSlot(date, "10:00", 60, -1)
		assert.ErrorIs(t, err, slot.ErrInvalidCapacity)
	})
}

func TestReconstructScheduleSlot(t *testing.T) {
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("exhausted slot has no capacity", func(t *testing.T) {
		s, err := slot.ReconstructScheduleSlot(date, "10:00", 60, 2, 0)
		require.NoError(t, err)

		assert.False(t, s.HasCapacity())
	})

	t.Run("available seats cannot exceed the total", func(t *testing.T) {
		_, err := slot.ReconstructScheduleSlot(date, "10:00", 60, 2, 3)
		assert.ErrorIs(t, err, slot.ErrInvalidCapacity)

		_, err = slot.ReconstructScheduleSlot(date, "10:00", 60, 2, -1)
		assert.ErrorIs(t, err, slot.ErrInvalidCapacity)
	})
}
