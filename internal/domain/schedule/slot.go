package schedule

import "time"

// Slot is a single concrete bookable interval derived from a TimetableEntry
// for one calendar date. It is a transient value; nothing is persisted until
// a slot becomes a booking at checkout.
type Slot struct {
	Activity ActivityType
	Facility FacilityID
	Start    time.Time
	End      time.Time
	IsClass  bool
}

// NaturalKey identifies a booking independently of any surrogate id.
// Two slots with equal natural keys are the same booking.
type NaturalKey struct {
	Activity ActivityType
	Facility FacilityID
	Start    time.Time
	End      time.Time
}

func (s Slot) Key() NaturalKey {
	return NaturalKey{
		Activity: s.Activity,
		Facility: s.Facility,
		Start:    s.Start,
		End:      s.End,
	}
}

func (k NaturalKey) Equal(other NaturalKey) bool {
	return k.Activity == other.Activity &&
		k.Facility == other.Facility &&
		k.Start.Equal(other.Start) &&
		k.End.Equal(other.End)
}

// GenerateSlots expands a timetable entry into the ordered bookable slots for
// one calendar date. The date's weekday must match the entry; a mismatch
// yields no slots. Slots step by the activity's length over
// [openHour, closeHour); a trailing interval shorter than the step is
// dropped rather than producing a short slot.
//
// Pure: identical inputs always yield identical output.
func GenerateSlots(entry *TimetableEntry, date time.Time) []Slot {
	if Weekday(mondayIndexed(date.Weekday())) != entry.Weekday() {
		return nil
	}

	step := entry.Activity().SlotHours()
	var slots []Slot
	for h := entry.OpenHour(); h+step <= entry.CloseHour(); h += step {
		start := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, date.Location())
		slots = append(slots, Slot{
			Activity: entry.Activity(),
			Facility: entry.Facility(),
			Start:    start,
			End:      start.Add(time.Duration(step) * time.Hour),
			IsClass:  entry.Activity().IsClass(),
		})
	}
	return slots
}
