package request

import (
	"leisure-booking/internal/usecase/commands"
)

type TimetableEntryRequest struct {
	Activity  *int `json:"activity" binding:"required,gte=0"`
	Facility  *int `json:"facility" binding:"required,gte=0"`
	Weekday   *int `json:"weekday" binding:"required,gte=0,lte=6"`
	OpenHour  *int `json:"open_hour" binding:"required,gte=0,lte=23"`
	CloseHour *int `json:"close_hour" binding:"required,gte=1,lte=24"`
}

func (r TimetableEntryRequest) ToInput() commands.TimetableEntryInput {
	return commands.TimetableEntryInput{
		Activity:  *r.Activity,
		Facility:  *r.Facility,
		Weekday:   *r.Weekday,
		OpenHour:  *r.OpenHour,
		CloseHour: *r.CloseHour,
	}
}

type FacilityRequest struct {
	OpenHour    *int `json:"open_hour" binding:"required,gte=0,lte=23"`
	CloseHour   *int `json:"close_hour" binding:"required,gte=1,lte=24"`
	MaxCapacity *int `json:"max_capacity" binding:"required,gte=1"`
}

type SetMembershipRequest struct {
	Plan string `json:"plan" binding:"required,oneof=none month year"`
}
