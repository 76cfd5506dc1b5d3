package repository

import (
	"context"
	"errors"
	"time"

	"hbot-booking/internal/domain/slot"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type SlotRepository struct {
	db infra.DBTX
}

func NewSlotRepository(db infra.DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

// Reserve takes one seat with a single conditional decrement. Two concurrent
// calls for the last seat resolve to exactly one success; the loser sees
// KindConflict.
func (r *SlotRepository) Reserve(ctx context.Context, db infra.DBTX, date time.Time, timeLabel string) (int, error) {
	const query = `
		UPDATE schedule_slots
		SET seats_available = seats_available - 1, updated_at = now()
		WHERE slot_date = $1 AND slot_time = $2 AND seats_available > 0
		RETURNING seats_available`

	var remaining int
	err := db.QueryRow(ctx, query, date, timeLabel).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !pgconv.IsNoRows(err) {
		return 0, infra.WrapRepoErr("failed to reserve slot", err)
	}

	// Zero rows means either no such slot or no seats left.
	const probe = `SELECT seats_available FROM schedule_slots WHERE slot_date = $1 AND slot_time = $2`
	var seats int
	if probeErr := db.QueryRow(ctx, probe, date, timeLabel).Scan(&seats); probeErr != nil {
		if pgconv.IsNoRows(probeErr) {
			return 0, infra.WrapRepoErr("slot not found", probeErr, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to check slot", probeErr)
	}
	return 0, infra.WrapRepoErr("slot exhausted", nil, infra.KindConflict)
}

// Release returns one seat, capped at the configured total. Used on
// cancellation and on payment-failure rollback; releasing an untouched slot
// is harmless because of the cap.
func (r *SlotRepository) Release(ctx context.Context, db infra.DBTX, date time.Time, timeLabel string) error {
	const query = `
		UPDATE schedule_slots
		SET seats_available = LEAST(seats_available + 1, seats_total), updated_at = now()
		WHERE slot_date = $1 AND slot_time = $2`

	tag, err := db.Exec(ctx, query, date, timeLabel)
	if err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindAvailableTimes lists time labels with seats remaining for a date.
func (r *SlotRepository) FindAvailableTimes(ctx context.Context, date time.Time) ([]string, error) {
	const query = `
		SELECT slot_time FROM schedule_slots
		WHERE slot_date = $1 AND seats_available > 0
		ORDER BY slot_time`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available slots", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slot rows", err)
	}
	return labels, nil
}

// CreateSlot inserts an operator-defined slot. Administrative, not part of
// the checkout path.
func (r *SlotRepository) CreateSlot(ctx context.Context, db infra.DBTX, s *slot.ScheduleSlot) error {
	const query = `
		INSERT INTO schedule_slots (slot_date, slot_time, duration_min, seats_total, seats_available)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := db.Exec(ctx, query, s.Date(), s.TimeLabel(), s.DurationMin(), s.SeatsTotal(), s.SeatsAvailable())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("slot already exists", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create slot", err)
	}
	return nil
}
