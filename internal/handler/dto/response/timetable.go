package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"leisure-booking/internal/usecase/queries"
)

type SlotResponse struct {
	Code     string    `json:"code"`
	Activity string    `json:"activity"`
	Facility string    `json:"facility"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	IsClass  bool      `json:"is_class"`
}

type ActivityScheduleResponse struct {
	EntryID   uuid.UUID      `json:"entry_id"`
	Activity  string         `json:"activity"`
	Facility  string         `json:"facility"`
	OpenHour  int            `json:"open_hour"`
	CloseHour int            `json:"close_hour"`
	Slots     []SlotResponse `json:"slots"`
}

type DayTimetableResponse struct {
	Date       time.Time                  `json:"date"`
	Weekday    string                     `json:"weekday"`
	Activities []ActivityScheduleResponse `json:"activities"`
}

type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Activity  int       `json:"activity"`
	Facility  int       `json:"facility"`
	Weekday   int       `json:"weekday"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
}

type FacilityResponse struct {
	Facility    int    `json:"facility"`
	Label       string `json:"label"`
	OpenHour    int    `json:"open_hour"`
	CloseHour   int    `json:"close_hour"`
	MaxCapacity int    `json:"max_capacity"`
}

func FromDayTimetableView(view *queries.DayTimetableView) (*DayTimetableResponse, error) {
	var resp DayTimetableResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromEntryViews(views []queries.EntryView) ([]EntryResponse, error) {
	resp := make([]EntryResponse, 0, len(views))
	if err := copier.Copy(&resp, views); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromFacilityViews(views []queries.FacilityView) ([]FacilityResponse, error) {
	resp := make([]FacilityResponse, 0, len(views))
	if err := copier.Copy(&resp, views); err != nil {
		return nil, err
	}
	return resp, nil
}
