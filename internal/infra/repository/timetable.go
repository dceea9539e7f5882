package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/infra/db"
)

type TimetableRepository struct {
	db db.DBTX
}

func NewTimetableRepository(dbtx db.DBTX) *TimetableRepository {
	return &TimetableRepository{db: dbtx}
}

const entryColumns = `id, activity, facility, weekday, open_hour, close_hour`

func (r *TimetableRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.TimetableEntry, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM timetable_entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("timetable entry not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find timetable entry", err)
	}
	return entry, nil
}

func (r *TimetableRepository) FindByWeekday(ctx context.Context, weekday schedule.Weekday) ([]*schedule.TimetableEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+` FROM timetable_entries
		WHERE weekday = $1
		ORDER BY open_hour, facility`, int(weekday))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query timetable by weekday", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *TimetableRepository) FindMatching(ctx context.Context, activity schedule.ActivityType, facility schedule.FacilityID, weekday schedule.Weekday) ([]*schedule.TimetableEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+` FROM timetable_entries
		WHERE activity = $1 AND facility = $2 AND weekday = $3`,
		int(activity), int(facility), int(weekday))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query matching timetable entries", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *TimetableRepository) FindAll(ctx context.Context) ([]*schedule.TimetableEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+` FROM timetable_entries
		ORDER BY weekday, open_hour, facility`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query timetable entries", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *TimetableRepository) Create(ctx context.Context, entry *schedule.TimetableEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO timetable_entries (id, activity, facility, weekday, open_hour, close_hour)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID(), int(entry.Activity()), int(entry.Facility()), int(entry.Weekday()), entry.OpenHour(), entry.CloseHour())
	if err != nil {
		return wrapWriteErr("failed to create timetable entry", err)
	}
	return nil
}

func (r *TimetableRepository) Update(ctx context.Context, entry *schedule.TimetableEntry) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE timetable_entries
		SET activity = $2, facility = $3, weekday = $4, open_hour = $5, close_hour = $6
		WHERE id = $1`,
		entry.ID(), int(entry.Activity()), int(entry.Facility()), int(entry.Weekday()), entry.OpenHour(), entry.CloseHour())
	if err != nil {
		return infra.WrapRepoErr("failed to update timetable entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("timetable entry not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *TimetableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM timetable_entries WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete timetable entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("timetable entry not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanEntry(row pgx.Row) (*schedule.TimetableEntry, error) {
	var (
		id                  uuid.UUID
		activity, facility  int
		weekday             int
		openHour, closeHour int
	)
	if err := row.Scan(&id, &activity, &facility, &weekday, &openHour, &closeHour); err != nil {
		return nil, err
	}

	act, err := schedule.NewActivityType(activity)
	if err != nil {
		return nil, err
	}
	fac, err := schedule.NewFacilityID(facility)
	if err != nil {
		return nil, err
	}
	day, err := schedule.NewWeekday(weekday)
	if err != nil {
		return nil, err
	}

	return schedule.ReconstructTimetableEntry(id, act, fac, day, openHour, closeHour), nil
}

func collectEntries(rows pgx.Rows) ([]*schedule.TimetableEntry, error) {
	var entries []*schedule.TimetableEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan timetable entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read timetable entries", err)
	}
	return entries, nil
}
