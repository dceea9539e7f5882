package schedule

import "leisure-booking/internal/pkg/errs"

// ActivityType enumerates the recurring activities a centre can timetable.
// Values are stable wire/database identifiers; do not reorder.
type ActivityType int

const (
	ActivityGeneral ActivityType = iota
	ActivityLaneSwim
	ActivitySwimLesson
	ActivityTeam
	ActivityPilates
	ActivityYoga
	ActivityAerobics
)

var ErrUnknownActivity = errs.New("unknown activity type")

func NewActivityType(v int) (ActivityType, error) {
	a := ActivityType(v)
	if !a.IsValid() {
		return 0, ErrUnknownActivity
	}
	return a, nil
}

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityGeneral, ActivityLaneSwim, ActivitySwimLesson,
		ActivityTeam, ActivityPilates, ActivityYoga, ActivityAerobics:
		return true
	default:
		return false
	}
}

func (a ActivityType) Label() string {
	switch a {
	case ActivityGeneral:
		return "General Use"
	case ActivityLaneSwim:
		return "Lane Swim"
	case ActivitySwimLesson:
		return "Swimming Lesson"
	case ActivityTeam:
		return "Team Activity"
	case ActivityPilates:
		return "Pilates Class"
	case ActivityYoga:
		return "Yoga Class"
	case ActivityAerobics:
		return "Aerobics Class"
	default:
		return "Unknown"
	}
}

// IsClass reports whether the activity is an instructor-led class.
func (a ActivityType) IsClass() bool {
	switch a {
	case ActivityPilates, ActivityYoga, ActivityAerobics:
		return true
	default:
		return false
	}
}

// SlotHours is the bookable slot length in whole hours.
// Team activities block out two hours; everything else runs hourly.
func (a ActivityType) SlotHours() int {
	if a == ActivityTeam {
		return 2
	}
	return 1
}

// FacilityID enumerates the physical facilities of the centre.
type FacilityID int

const (
	FacilityPool FacilityID = iota
	FacilityFitness
	FacilitySquash
	FacilityHall
	FacilityClimbing
	FacilityStudio
)

var ErrUnknownFacility = errs.New("unknown facility")

func NewFacilityID(v int) (FacilityID, error) {
	f := FacilityID(v)
	if !f.IsValid() {
		return 0, ErrUnknownFacility
	}
	return f, nil
}

func (f FacilityID) IsValid() bool {
	switch f {
	case FacilityPool, FacilityFitness, FacilitySquash,
		FacilityHall, FacilityClimbing, FacilityStudio:
		return true
	default:
		return false
	}
}

func (f FacilityID) Label() string {
	switch f {
	case FacilityPool:
		return "Swimming Pool"
	case FacilityFitness:
		return "Fitness Room"
	case FacilitySquash:
		return "Squash Courts"
	case FacilityHall:
		return "Sports Hall"
	case FacilityClimbing:
		return "Climbing Wall"
	case FacilityStudio:
		return "Studio"
	default:
		return "Unknown"
	}
}

// Weekday runs Monday=0 through Sunday=6, matching the timetable storage format.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var ErrUnknownWeekday = errs.New("unknown weekday")

func NewWeekday(v int) (Weekday, error) {
	w := Weekday(v)
	if w < Monday || w > Sunday {
		return 0, ErrUnknownWeekday
	}
	return w, nil
}

func (w Weekday) Label() string {
	switch w {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return "Unknown"
	}
}

// ActivityKind groups activity types for timetable filtering.
type ActivityKind string

const (
	KindGeneral ActivityKind = "general"
	KindClass   ActivityKind = "class"
	KindTeam    ActivityKind = "team"
	KindAll     ActivityKind = "all"
)

var ErrUnknownActivityKind = errs.New("unknown activity kind")

func NewActivityKind(s string) (ActivityKind, error) {
	k := ActivityKind(s)
	switch k {
	case KindGeneral, KindClass, KindTeam, KindAll:
		return k, nil
	default:
		return "", ErrUnknownActivityKind
	}
}

// Matches reports whether the activity belongs to this kind.
func (k ActivityKind) Matches(a ActivityType) bool {
	switch k {
	case KindGeneral:
		return a == ActivityGeneral || a == ActivityLaneSwim || a == ActivitySwimLesson
	case KindClass:
		return a.IsClass()
	case KindTeam:
		return a == ActivityTeam
	case KindAll:
		return true
	default:
		return false
	}
}
