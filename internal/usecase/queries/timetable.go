package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/basket"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

// BasketReader is the read half of the basket store. The day view hides
// slots the viewer has already put in their basket.
type BasketReader interface {
	Get(ctx context.Context, scope string) (basket.Basket, error)
}

type SlotView struct {
	Code     string    `json:"code"`
	Activity string    `json:"activity"`
	Facility string    `json:"facility"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	IsClass  bool      `json:"is_class"`
}

type ActivityScheduleView struct {
	EntryID   uuid.UUID  `json:"entry_id"`
	Activity  string     `json:"activity"`
	Facility  string     `json:"facility"`
	OpenHour  int        `json:"open_hour"`
	CloseHour int        `json:"close_hour"`
	Slots     []SlotView `json:"slots"`
}

type DayTimetableView struct {
	Date       time.Time              `json:"date"`
	Weekday    string                 `json:"weekday"`
	Activities []ActivityScheduleView `json:"activities"`
}

type EntryView struct {
	ID        uuid.UUID `json:"id"`
	Activity  int       `json:"activity"`
	Facility  int       `json:"facility"`
	Weekday   int       `json:"weekday"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
}

type FacilityView struct {
	Facility    int    `json:"facility"`
	Label       string `json:"label"`
	OpenHour    int    `json:"open_hour"`
	CloseHour   int    `json:"close_hour"`
	MaxCapacity int    `json:"max_capacity"`
}

type TimetableQueries interface {
	// DayView expands every matching timetable entry into the date's bookable
	// slots, filtered down to what the viewer can actually book: slots that
	// clash with their confirmed bookings or sit in their basket are hidden.
	DayView(ctx context.Context, date time.Time, kind schedule.ActivityKind, viewer uuid.UUID) (*DayTimetableView, error)
	Entries(ctx context.Context) ([]EntryView, error)
	Facilities(ctx context.Context) ([]FacilityView, error)
}

type timetableQueries struct {
	uow     shared.UnitOfWork
	baskets BasketReader
}

func NewTimetableQueries(uow shared.UnitOfWork, baskets BasketReader) TimetableQueries {
	return &timetableQueries{uow: uow, baskets: baskets}
}

func (q *timetableQueries) DayView(ctx context.Context, date time.Time, kind schedule.ActivityKind, viewer uuid.UUID) (*DayTimetableView, error) {
	repos := q.uow.Repos()
	weekday := schedule.WeekdayOf(date)

	entries, err := repos.Timetable().FindByWeekday(ctx, weekday)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	booked, err := repos.Bookings().BookedIntervals(ctx, viewer)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	b, err := q.baskets.Get(ctx, viewer.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load basket")
	}

	view := &DayTimetableView{
		Date:    date,
		Weekday: weekday.Label(),
	}
	for _, entry := range entries {
		if !kind.Matches(entry.Activity()) {
			continue
		}

		available := schedule.FilterAvailable(schedule.GenerateSlots(entry, date), booked)

		slots := make([]SlotView, 0, len(available))
		for _, slot := range available {
			code := slot.Code()
			if b.Contains(code) {
				continue
			}
			slots = append(slots, SlotView{
				Code:     code,
				Activity: slot.Activity.Label(),
				Facility: slot.Facility.Label(),
				Start:    slot.Start,
				End:      slot.End,
				IsClass:  slot.IsClass,
			})
		}

		view.Activities = append(view.Activities, ActivityScheduleView{
			EntryID:   entry.ID(),
			Activity:  entry.Activity().Label(),
			Facility:  entry.Facility().Label(),
			OpenHour:  entry.OpenHour(),
			CloseHour: entry.CloseHour(),
			Slots:     slots,
		})
	}
	return view, nil
}

func (q *timetableQueries) Entries(ctx context.Context) ([]EntryView, error) {
	entries, err := q.uow.Repos().Timetable().FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, EntryView{
			ID:        entry.ID(),
			Activity:  int(entry.Activity()),
			Facility:  int(entry.Facility()),
			Weekday:   int(entry.Weekday()),
			OpenHour:  entry.OpenHour(),
			CloseHour: entry.CloseHour(),
		})
	}
	return views, nil
}

func (q *timetableQueries) Facilities(ctx context.Context) ([]FacilityView, error) {
	facilities, err := q.uow.Repos().Facilities().FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]FacilityView, 0, len(facilities))
	for _, f := range facilities {
		views = append(views, FacilityView{
			Facility:    int(f.ID()),
			Label:       f.ID().Label(),
			OpenHour:    f.OpenHour(),
			CloseHour:   f.CloseHour(),
			MaxCapacity: f.MaxCapacity(),
		})
	}
	return views, nil
}
