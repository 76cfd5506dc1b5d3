package pricing

import (
	"time"
)

// Engine computes a session price from duration, group size, location and
// date. It is deterministic and performs no I/O: the quote endpoint and the
// checkout path share one instance, so the two amounts can never diverge.
type Engine struct {
	basePriceCents  map[int]int64
	fallbackCents   int64
	groupMultiplier map[string]int64 // basis points, keyed by raw form value
	promotions      []Promotion
}

const (
	fallbackDurationMin = 60
	baseMultiplierBps   = 100
)

func NewEngine(promotions ...Promotion) *Engine {
	return &Engine{
		basePriceCents: map[int]int64{
			60:  15000,
			90:  20000,
			120: 26000,
		},
		fallbackCents: 15000,
		// Sub-linear discount curve: every multiplier stays below the
		// group size itself, so a group always pays less per head.
		groupMultiplier: map[string]int64{
			"1": 100,
			"2": 180,
			"3": 255,
			"4": 320,
			"5": 375,
		},
		promotions: promotions,
	}
}

// Quote returns the amount in cents for one booking.
//
// An active promotion fixes the price for the duration and suppresses the
// group multiplier; a promotion with no price for the duration falls back to
// the undiscounted base price.
func (e *Engine) Quote(durationMin int, groupSize, location string, day time.Time) int64 {
	base, ok := e.basePriceCents[durationMin]
	if !ok {
		base = e.fallbackCents
	}

	if promo := e.activePromotion(location, day); promo != nil {
		if fixed, ok := promo.PriceCents[durationMin]; ok {
			return fixed
		}
		return base
	}

	mult, ok := e.groupMultiplier[groupSize]
	if !ok {
		mult = baseMultiplierBps
	}
	return base * mult / 100
}

func (e *Engine) activePromotion(location string, day time.Time) *Promotion {
	for i := range e.promotions {
		if e.promotions[i].AppliesTo(location, day) {
			return &e.promotions[i]
		}
	}
	return nil
}
