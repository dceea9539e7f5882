package schedule

import (
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/pkg/errs"
)

var ErrInvalidHourRange = errs.New("opening hour must be before closing hour")

// TimetableEntry is a recurring weekly activity definition: which activity
// runs in which facility on which weekday, between which whole hours.
// Entries are created by admin workflows and read-only at booking time.
type TimetableEntry struct {
	id        uuid.UUID
	activity  ActivityType
	facility  FacilityID
	weekday   Weekday
	openHour  int
	closeHour int
}

func NewTimetableEntry(activity ActivityType, facility FacilityID, weekday Weekday, openHour, closeHour int) (*TimetableEntry, error) {
	if !activity.IsValid() {
		return nil, ErrUnknownActivity
	}
	if !facility.IsValid() {
		return nil, ErrUnknownFacility
	}
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return nil, ErrInvalidHourRange
	}
	return &TimetableEntry{
		id:        uuid.New(),
		activity:  activity,
		facility:  facility,
		weekday:   weekday,
		openHour:  openHour,
		closeHour: closeHour,
	}, nil
}

func ReconstructTimetableEntry(id uuid.UUID, activity ActivityType, facility FacilityID, weekday Weekday, openHour, closeHour int) *TimetableEntry {
	return &TimetableEntry{
		id:        id,
		activity:  activity,
		facility:  facility,
		weekday:   weekday,
		openHour:  openHour,
		closeHour: closeHour,
	}
}

func (e *TimetableEntry) ID() uuid.UUID          { return e.id }
func (e *TimetableEntry) Activity() ActivityType { return e.activity }
func (e *TimetableEntry) Facility() FacilityID   { return e.facility }
func (e *TimetableEntry) Weekday() Weekday       { return e.weekday }
func (e *TimetableEntry) OpenHour() int          { return e.openHour }
func (e *TimetableEntry) CloseHour() int         { return e.closeHour }

// Covers reports whether a slot with the given natural key could have been
// generated from this entry. Used to reject stale slot codes after the
// timetable has changed.
func (e *TimetableEntry) Covers(s Slot) bool {
	if s.Activity != e.activity || s.Facility != e.facility {
		return false
	}
	if Weekday(mondayIndexed(s.Start.Weekday())) != e.weekday {
		return false
	}
	endHour := s.Start.Hour() + int(s.End.Sub(s.Start).Hours())
	return s.Start.Hour() >= e.openHour && endHour <= e.closeHour
}

// mondayIndexed converts time.Weekday (Sunday=0) to the Monday=0 convention.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WeekdayOf maps a calendar instant to the timetable weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(mondayIndexed(t.Weekday()))
}
