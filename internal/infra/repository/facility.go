package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/infra/db"
)

type FacilityRepository struct {
	db db.DBTX
}

func NewFacilityRepository(dbtx db.DBTX) *FacilityRepository {
	return &FacilityRepository{db: dbtx}
}

func (r *FacilityRepository) FindByID(ctx context.Context, id schedule.FacilityID) (*schedule.Facility, error) {
	row := r.db.QueryRow(ctx, `
		SELECT facility, open_hour, close_hour, max_capacity
		FROM facilities WHERE facility = $1`, int(id))

	facility, err := scanFacility(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("facility not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find facility", err)
	}
	return facility, nil
}

func (r *FacilityRepository) FindAll(ctx context.Context) ([]*schedule.Facility, error) {
	rows, err := r.db.Query(ctx, `
		SELECT facility, open_hour, close_hour, max_capacity
		FROM facilities ORDER BY facility`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query facilities", err)
	}
	defer rows.Close()

	var facilities []*schedule.Facility
	for rows.Next() {
		facility, scanErr := scanFacility(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan facility", scanErr)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read facilities", err)
	}
	return facilities, nil
}

func (r *FacilityRepository) Save(ctx context.Context, facility *schedule.Facility) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO facilities (facility, open_hour, close_hour, max_capacity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (facility)
		DO UPDATE SET open_hour = EXCLUDED.open_hour,
		              close_hour = EXCLUDED.close_hour,
		              max_capacity = EXCLUDED.max_capacity`,
		int(facility.ID()), facility.OpenHour(), facility.CloseHour(), facility.MaxCapacity())
	if err != nil {
		return infra.WrapRepoErr("failed to save facility", err)
	}
	return nil
}

func scanFacility(row pgx.Row) (*schedule.Facility, error) {
	var facility, openHour, closeHour, maxCapacity int
	if err := row.Scan(&facility, &openHour, &closeHour, &maxCapacity); err != nil {
		return nil, err
	}

	id, err := schedule.NewFacilityID(facility)
	if err != nil {
		return nil, err
	}
	return schedule.ReconstructFacility(id, openHour, closeHour, maxCapacity), nil
}
