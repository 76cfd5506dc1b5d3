package commands

import (
	"context"
	"time"

	"hbot-booking/internal/domain/slot"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSlotAlreadyExists = errs.New("slot already exists")

type ScheduleCommands interface {
	// CreateSlot publishes a bookable slot. Duplicate (date, time) pairs are
	// rejected, not merged.
	CreateSlot(ctx context.Context, date time.Time, timeLabel string, durationMin, seatsTotal int) error
}

type scheduleUseCaseImpl struct {
	slotRepo SlotAdminRepository
	db       *pgxpool.Pool
}

func NewScheduleUseCase(slotRepo SlotAdminRepository, db *pgxpool.Pool) ScheduleCommands {
	return &scheduleUseCaseImpl{
		slotRepo: slotRepo,
		db:       db,
	}
}

func (s *scheduleUseCaseImpl) CreateSlot(ctx context.Context, date time.Time, timeLabel string, durationMin, seatsTotal int) error {
	entity, err := slot.NewScheduleSlot(date, timeLabel, durationMin, seatsTotal)
	if err != nil {
		return err
	}

	if err := s.slotRepo.CreateSlot(ctx, s.db, entity); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrSlotAlreadyExists)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
