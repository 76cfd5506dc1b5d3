package pricing

import "time"

// Promotion is a location and date bounded price override. The window is
// inclusive on both ends and compared by calendar day, matching how
// operators announce campaigns.
type Promotion struct {
	Location   string
	From       time.Time
	To         time.Time
	PriceCents map[int]int64 // fixed price per duration, minutes
}

func (p Promotion) AppliesTo(location string, day time.Time) bool {
	if p.Location != location {
		return false
	}
	d := day.Truncate(24 * time.Hour)
	from := p.From.Truncate(24 * time.Hour)
	to := p.To.Truncate(24 * time.Hour)
	return !d.Before(from) && !d.After(to)
}

// ActivePromotions is the campaign table the service runs with. Campaigns
// are edited here and shipped through code review, like the credit
// allocation rules.
func ActivePromotions() []Promotion {
	return []Promotion{
		{
			Location: "westside",
			From:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
			PriceCents: map[int]int64{
				60: 9900,
				90: 14900,
			},
		},
	}
}
