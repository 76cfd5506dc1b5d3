//go:build unit || e2e

package dbtest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBLike is the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ResetDB truncates all mutable tables between subtests.
func ResetDB(db DBLike) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Exec(ctx, `
		TRUNCATE TABLE credit_packages, notification_jobs, bookings, schedule_slots
		RESTART IDENTITY CASCADE`)
	return err
}

// SeedSlot inserts one schedule slot and returns nothing; tests reserve
// through the repository under test.
func SeedSlot(db DBLike, date time.Time, timeLabel string, durationMin, seatsTotal int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Exec(ctx, `
		INSERT INTO schedule_slots (slot_date, slot_time, duration_min, seats_total, seats_available)
		VALUES ($1, $2, $3, $4, $4)`,
		date, timeLabel, durationMin, seatsTotal)
	return err
}
