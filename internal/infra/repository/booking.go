package repository

import (
	"context"

	"hbot-booking/internal/domain/booking"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/pkg/pgconv"
	"hbot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct {
	db infra.DBTX
}

func NewBookingRepository(db infra.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, db infra.DBTX, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (
			id, name, email, phone, slot_date, slot_time, duration_min,
			location, group_size, service_id, user_id, amount_cents, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	var id uuid.UUID
	err := db.QueryRow(ctx, query,
		b.ID(),
		b.Contact().Name(),
		b.Contact().Email(),
		b.Contact().Phone(),
		b.SlotDate(),
		b.SlotTime(),
		b.DurationMin(),
		b.Location(),
		b.GroupSize(),
		pgconv.StringPtrToPgtype(b.ServiceID()),
		pgconv.UUIDPtrToPgtype(b.UserID()),
		b.AmountCents(),
		b.PaymentStatus().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// AttachPaymentIntent sets the intent id at most once. Re-attaching the same
// id is idempotent; a different id on an already-bound booking is a conflict.
func (r *BookingRepository) AttachPaymentIntent(ctx context.Context, db infra.DBTX, bookingID uuid.UUID, intentID string) error {
	const query = `
		UPDATE bookings
		SET payment_intent_id = $2, updated_at = now()
		WHERE id = $1 AND (payment_intent_id IS NULL OR payment_intent_id = $2)`

	tag, err := db.Exec(ctx, query, bookingID, intentID)
	if err != nil {
		return infra.WrapRepoErr("failed to attach payment intent", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const probe = `SELECT payment_intent_id FROM bookings WHERE id = $1`
	var existing pgtype.Text
	if probeErr := db.QueryRow(ctx, probe, bookingID).Scan(&existing); probeErr != nil {
		if pgconv.IsNoRows(probeErr) {
			return infra.WrapRepoErr("booking not found", probeErr, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to check booking", probeErr)
	}
	return infra.WrapRepoErr("payment intent already attached", nil, infra.KindConflict)
}

// MarkCompletedByIntent drives the booking referenced by a gateway intent to
// completed. Returns false with no error when the booking is already
// terminal: replays and late events are no-ops, never regressions.
func (r *BookingRepository) MarkCompletedByIntent(ctx context.Context, db infra.DBTX, intentID string) (bool, error) {
	return r.transitionByIntent(ctx, db, intentID, booking.StatusCompleted)
}

func (r *BookingRepository) MarkFailedByIntent(ctx context.Context, db infra.DBTX, intentID string) (bool, error) {
	return r.transitionByIntent(ctx, db, intentID, booking.StatusFailed)
}

// MarkFailedByID is the cancellation/rollback half of the terminal
// transitions: callers on this path hold a booking id, not an intent id.
// Same no-op-if-terminal contract.
func (r *BookingRepository) MarkFailedByID(ctx context.Context, db infra.DBTX, bookingID uuid.UUID) (bool, error) {
	const query = `
		UPDATE bookings
		SET payment_status = 'failed', updated_at = now()
		WHERE id = $1 AND payment_status = 'pending'`

	tag, err := db.Exec(ctx, query, bookingID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark booking failed", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Probe on the same handle as the mutation so a caller-owned
	// transaction sees its own uncommitted rows.
	const probe = `SELECT payment_status FROM bookings WHERE id = $1`
	var status string
	if probeErr := db.QueryRow(ctx, probe, bookingID).Scan(&status); probeErr != nil {
		if pgconv.IsNoRows(probeErr) {
			return false, infra.WrapRepoErr("booking not found", probeErr, infra.KindNotFound)
		}
		return false, infra.WrapRepoErr("failed to check booking status", probeErr)
	}
	return false, nil
}

func (r *BookingRepository) transitionByIntent(ctx context.Context, db infra.DBTX, intentID string, next booking.PaymentStatus) (bool, error) {
	const query = `
		UPDATE bookings
		SET payment_status = $2, updated_at = now()
		WHERE payment_intent_id = $1 AND payment_status = 'pending'`

	tag, err := db.Exec(ctx, query, intentID, next.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update payment status", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	const probe = `SELECT payment_status FROM bookings WHERE payment_intent_id = $1`
	var status string
	if probeErr := db.QueryRow(ctx, probe, intentID).Scan(&status); probeErr != nil {
		if pgconv.IsNoRows(probeErr) {
			return false, infra.WrapRepoErr("no booking for payment intent", probeErr, infra.KindNotFound)
		}
		return false, infra.WrapRepoErr("failed to check booking status", probeErr)
	}
	// Already terminal; idempotent no-op.
	return false, nil
}

const bookingColumns = `
	id, name, email, phone, slot_date, slot_time, duration_min, location,
	group_size, service_id, user_id, amount_cents, payment_intent_id,
	payment_status, created_at, updated_at`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, id))
}

func (r *BookingRepository) FindByIntentID(ctx context.Context, intentID string) (*queries.BookingView, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE payment_intent_id = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, intentID))
}

type bookingRow interface {
	Scan(dest ...any) error
}

func (r *BookingRepository) scanBooking(row bookingRow) (*queries.BookingView, error) {
	var (
		v         queries.BookingView
		serviceID pgtype.Text
		userID    pgtype.UUID
		intentID  pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.SlotDate, &v.SlotTime,
		&v.DurationMin, &v.Location, &v.GroupSize, &serviceID, &userID,
		&v.AmountCents, &intentID, &v.PaymentStatus, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	v.ServiceID = pgconv.StringPtrFromPgtype(serviceID)
	v.UserID = pgconv.UUIDPtrFromPgtype(userID)
	v.PaymentIntentID = pgconv.StringPtrFromPgtype(intentID)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

// FindUnreconciled returns completed bookings that reference a service and a
// user but have no credit package recorded against them. Feeds the manual
// reconciliation sweep; nothing here mutates state.
func (r *BookingRepository) FindUnreconciled(ctx context.Context) ([]*queries.UnreconciledBookingView, error) {
	const query = `
		SELECT b.id, b.user_id, b.service_id, b.payment_intent_id, b.updated_at
		FROM bookings b
		WHERE b.payment_status = 'completed'
		  AND b.service_id IS NOT NULL
		  AND b.user_id IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM credit_packages cp WHERE cp.booking_id = b.id
		  )
		ORDER BY b.updated_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query unreconciled bookings", err)
	}
	defer rows.Close()

	var result []*queries.UnreconciledBookingView
	for rows.Next() {
		var (
			v           queries.UnreconciledBookingView
			intentID    pgtype.Text
			completedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.BookingID, &v.UserID, &v.ServiceID, &intentID, &completedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan unreconciled booking", err)
		}
		v.PaymentIntentID = pgconv.StringPtrFromPgtype(intentID)
		v.CompletedAt = pgconv.TimeFromPgtype(completedAt)
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read unreconciled bookings", err)
	}
	return result, nil
}
