package commands

import (
	"context"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

// TimetableEntryInput carries the raw fields of an entry create or update.
// Enum and hour-range validation happens in the domain constructor.
type TimetableEntryInput struct {
	Activity  int
	Facility  int
	Weekday   int
	OpenHour  int
	CloseHour int
}

type AdminCommands interface {
	CreateEntry(ctx context.Context, in TimetableEntryInput) (*schedule.TimetableEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, in TimetableEntryInput) (*schedule.TimetableEntry, error)
	// DeleteEntry removes a timetable entry. Existing bookings stay in the
	// ledger; their codes turn stale and fail at the next checkout.
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	// SaveFacility sets a facility's opening hours and capacity ceiling.
	// Capacity changes never evict existing attendees; they bind future
	// checkouts only.
	SaveFacility(ctx context.Context, facility int, openHour, closeHour, maxCapacity int) (*schedule.Facility, error)
}

type adminCommands struct {
	uow shared.UnitOfWork
}

func NewAdminCommands(uow shared.UnitOfWork) AdminCommands {
	return &adminCommands{uow: uow}
}

func (c *adminCommands) CreateEntry(ctx context.Context, in TimetableEntryInput) (*schedule.TimetableEntry, error) {
	entry, err := entryFromInput(in)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Timetable().Create(ctx, entry)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return entry, nil
}

func (c *adminCommands) UpdateEntry(ctx context.Context, id uuid.UUID, in TimetableEntryInput) (*schedule.TimetableEntry, error) {
	replacement, err := entryFromInput(in)
	if err != nil {
		return nil, err
	}

	updated := schedule.ReconstructTimetableEntry(
		id,
		replacement.Activity(),
		replacement.Facility(),
		replacement.Weekday(),
		replacement.OpenHour(),
		replacement.CloseHour(),
	)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Timetable().FindByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrTimetableEntryNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return tx.Timetable().Update(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *adminCommands) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Timetable().Delete(ctx, id)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrTimetableEntryNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *adminCommands) SaveFacility(ctx context.Context, facility int, openHour, closeHour, maxCapacity int) (*schedule.Facility, error) {
	id, err := schedule.NewFacilityID(facility)
	if err != nil {
		return nil, err
	}
	f, err := schedule.NewFacility(id, openHour, closeHour, maxCapacity)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Facilities().Save(ctx, f)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return f, nil
}

func entryFromInput(in TimetableEntryInput) (*schedule.TimetableEntry, error) {
	activity, err := schedule.NewActivityType(in.Activity)
	if err != nil {
		return nil, err
	}
	facility, err := schedule.NewFacilityID(in.Facility)
	if err != nil {
		return nil, err
	}
	weekday, err := schedule.NewWeekday(in.Weekday)
	if err != nil {
		return nil, err
	}
	return schedule.NewTimetableEntry(activity, facility, weekday, in.OpenHour, in.CloseHour)
}
