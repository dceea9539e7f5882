package schedule

import "leisure-booking/internal/pkg/errs"

var ErrInvalidCapacity = errs.New("facility capacity must be positive")

// Facility holds the physical constraints the checkout resolver enforces:
// the capacity ceiling and the daily opening hours.
type Facility struct {
	id          FacilityID
	openHour    int
	closeHour   int
	maxCapacity int
}

func NewFacility(id FacilityID, openHour, closeHour, maxCapacity int) (*Facility, error) {
	if !id.IsValid() {
		return nil, ErrUnknownFacility
	}
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return nil, ErrInvalidHourRange
	}
	if maxCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Facility{
		id:          id,
		openHour:    openHour,
		closeHour:   closeHour,
		maxCapacity: maxCapacity,
	}, nil
}

func ReconstructFacility(id FacilityID, openHour, closeHour, maxCapacity int) *Facility {
	return &Facility{
		id:          id,
		openHour:    openHour,
		closeHour:   closeHour,
		maxCapacity: maxCapacity,
	}
}

func (f *Facility) ID() FacilityID   { return f.id }
func (f *Facility) OpenHour() int    { return f.openHour }
func (f *Facility) CloseHour() int   { return f.closeHour }
func (f *Facility) MaxCapacity() int { return f.maxCapacity }

// HasRoomFor reports whether one more attendee fits on top of the current
// attendance. A facility at exactly its configured maximum is full.
func (f *Facility) HasRoomFor(currentAttendance int) bool {
	return currentAttendance < f.maxCapacity
}
