//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"hbot-booking/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuote(t *testing.T) {
	engine := pricing.NewEngine()
	anyDay := day("2026-03-10")

	t.Run("base prices per duration", func(t *testing.T) {
		tests := []struct {
			name        string
			durationMin int
			want        int64
		}{
			{name: "60 minutes", durationMin: 60, want: 15000},
			{name: "90 minutes", durationMin: 90, want: 20000},
			{name: "120 minutes", durationMin: 120, want: 26000},
			{name: "unknown duration falls back to 60-minute price", durationMin: 45, want: 15000},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := engine.Quote(tt.durationMin, "1", "downtown", anyDay)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("group multipliers", func(t *testing.T) {
		tests := []struct {
			name      string
			groupSize string
			want      int64
		}{
			{name: "single", groupSize: "1", want: 15000},
			{name: "pair", groupSize: "2", want: 27000},
			{name: "three pays 2.55x exactly", groupSize: "3", want: 38250},
			{name: "four", groupSize: "4", want: 48000},
			{name: "five", groupSize: "5", want: 56250},
			{name: "unknown group size treated as single", groupSize: "12", want: 15000},
			{name: "empty group size treated as single", groupSize: "", want: 15000},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := engine.Quote(60, tt.groupSize, "downtown", anyDay)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("90 minutes for one person", func(t *testing.T) {
		assert.Equal(t, int64(20000), engine.Quote(90, "1", "downtown", anyDay))
	})
}

func TestQuotePromotions(t *testing.T) {
	promo := pricing.Promotion{
		Location: "downtown",
		From:     day("2026-03-01"),
		To:       day("2026-03-31"),
		PriceCents: map[int]int64{
			60: 9900,
		},
	}
	engine := pricing.NewEngine(promo)

	t.Run("fixed price inside the window", func(t *testing.T) {
		assert.Equal(t, int64(9900), engine.Quote(60, "1", "downtown", day("2026-03-15")))
	})

	t.Run("promotion suppresses the group multiplier", func(t *testing.T) {
		assert.Equal(t, int64(9900), engine.Quote(60, "3", "downtown", day("2026-03-15")))
	})

	t.Run("duration without a promo price gets undiscounted base", func(t *testing.T) {
		assert.Equal(t, int64(20000), engine.Quote(90, "3", "downtown", day("2026-03-15")))
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		assert.Equal(t, int64(9900), engine.Quote(60, "1", "downtown", day("2026-03-01")))
		assert.Equal(t, int64(9900), engine.Quote(60, "1", "downtown", day("2026-03-31")))
	})

	t.Run("outside the window", func(t *testing.T) {
		assert.Equal(t, int64(38250), engine.Quote(60, "3", "downtown", day("2026-04-01")))
	})

	t.Run("other locations unaffected", func(t *testing.T) {
		assert.Equal(t, int64(38250), engine.Quote(60, "3", "uptown", day("2026-03-15")))
	})
}

// The shipped campaign table, as the bootstrap wires it.
func TestActivePromotions(t *testing.T) {
	engine := pricing.NewEngine(pricing.ActivePromotions()...)

	t.Run("westside campaign fixes the price", func(t *testing.T) {
		assert.Equal(t, int64(9900), engine.Quote(60, "3", "westside", day("2026-09-15")))
		assert.Equal(t, int64(14900), engine.Quote(90, "1", "westside", day("2026-09-15")))
	})

	t.Run("campaign leaves other locations and dates alone", func(t *testing.T) {
		assert.Equal(t, int64(38250), engine.Quote(60, "3", "downtown", day("2026-09-15")))
		assert.Equal(t, int64(38250), engine.Quote(60, "3", "westside", day("2026-10-01")))
	})
}
