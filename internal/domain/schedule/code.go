package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"leisure-booking/internal/pkg/errs"
)

// Slot codes carry a slot's natural key through form posts and the basket
// without a database round trip. Wire format, hyphen-delimited:
//
//	{activity}-{facility}-{DD/MM/YY}-{startHour}-{endHour}
//
// The date uses slashes so it splits into one field. Encode/decode is a
// lossless round trip for every valid slot.

const codeDateLayout = "02/01/06"

var (
	ErrMalformedSlotCode = errs.New("malformed slot code")
)

// Code encodes the slot's natural key as text.
func (s Slot) Code() string {
	return fmt.Sprintf("%d-%d-%s-%d-%d",
		int(s.Activity),
		int(s.Facility),
		s.Start.Format(codeDateLayout),
		s.Start.Hour(),
		s.End.Hour(),
	)
}

// SlotFromCode decodes a slot identity code. Codes with the wrong field
// count, non-integer ids, unknown enum values, an unparseable date, or a
// non-positive hour range are rejected with ErrMalformedSlotCode.
func SlotFromCode(code string) (Slot, error) {
	fields := strings.Split(code, "-")
	if len(fields) != 5 {
		return Slot{}, errs.Mark(errs.Newf("expected 5 fields, got %d", len(fields)), ErrMalformedSlotCode)
	}

	activityID, err := strconv.Atoi(fields[0])
	if err != nil {
		return Slot{}, errs.Mark(errs.Wrap(err, "activity id"), ErrMalformedSlotCode)
	}
	activity, err := NewActivityType(activityID)
	if err != nil {
		return Slot{}, errs.Mark(err, ErrMalformedSlotCode)
	}

	facilityID, err := strconv.Atoi(fields[1])
	if err != nil {
		return Slot{}, errs.Mark(errs.Wrap(err, "facility id"), ErrMalformedSlotCode)
	}
	facility, err := NewFacilityID(facilityID)
	if err != nil {
		return Slot{}, errs.Mark(err, ErrMalformedSlotCode)
	}

	date, err := time.Parse(codeDateLayout, fields[2])
	if err != nil {
		return Slot{}, errs.Mark(errs.Wrap(err, "date"), ErrMalformedSlotCode)
	}

	startHour, err := strconv.Atoi(fields[3])
	if err != nil {
		return Slot{}, errs.Mark(errs.Wrap(err, "start hour"), ErrMalformedSlotCode)
	}
	endHour, err := strconv.Atoi(fields[4])
	if err != nil {
		return Slot{}, errs.Mark(errs.Wrap(err, "end hour"), ErrMalformedSlotCode)
	}
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return Slot{}, errs.Mark(errs.Newf("hour range %d-%d", startHour, endHour), ErrMalformedSlotCode)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, time.UTC)
	end := time.Date(date.Year(), date.Month(), date.Day(), endHour, 0, 0, 0, time.UTC)

	return Slot{
		Activity: activity,
		Facility: facility,
		Start:    start,
		End:      end,
		IsClass:  activity.IsClass(),
	}, nil
}
