package queries

import (
	"context"
	"iter"
	"time"
)

type SlotReadStore interface {
	FindAvailableTimes(ctx context.Context, date time.Time) ([]string, error)
}

type SlotQueries interface {
	// AvailableTimes yields the open time labels for a date. The sequence is
	// finite and restartable: ranging over it twice replays the same labels.
	AvailableTimes(ctx context.Context, date time.Time) (iter.Seq[string], error)
}

type slotQueriesImpl struct {
	store SlotReadStore
}

func NewSlotQueries(store SlotReadStore) SlotQueries {
	return &slotQueriesImpl{store: store}
}

func (q *slotQueriesImpl) AvailableTimes(ctx context.Context, date time.Time) (iter.Seq[string], error) {
	labels, err := q.store.FindAvailableTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for _, label := range labels {
			if !yield(label) {
				return
			}
		}
	}, nil
}
