package queries

import (
	"context"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindUnreconciled(ctx context.Context) ([]*UnreconciledBookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// Unreconciled lists completed credit-granting bookings with no matching
	// package. Feeds the manual sweep; see the reconciliation engine.
	Unreconciled(ctx context.Context) ([]*UnreconciledBookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) Unreconciled(ctx context.Context) ([]*UnreconciledBookingView, error) {
	return q.store.FindUnreconciled(ctx)
}
