package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"leisure-booking/internal/usecase/commands"
	"leisure-booking/internal/usecase/queries"
)

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Activity  string    `json:"activity"`
	Facility  string    `json:"facility"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	IsClass   bool      `json:"is_class"`
	Attendees int       `json:"attendees"`
	Expired   bool      `json:"expired"`
}

type DayGroupResponse struct {
	Date     time.Time         `json:"date"`
	Bookings []BookingResponse `json:"bookings"`
}

type CheckoutResponse struct {
	Valid            bool                      `json:"valid"`
	Problems         []string                  `json:"problems"`
	Bookings         []CheckoutBookingResponse `json:"bookings"`
	DiscountEligible bool                      `json:"discount_eligible"`
	RequiresPayment  bool                      `json:"requires_payment"`
}

type CheckoutBookingResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Activity  string    `json:"activity"`
	Facility  string    `json:"facility"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Attendees int       `json:"attendees"`
}

func FromDayGroupViews(views []queries.DayGroupView) ([]DayGroupResponse, error) {
	resp := make([]DayGroupResponse, 0, len(views))
	if err := copier.Copy(&resp, views); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromBookingViews(views []queries.BookingView) ([]BookingResponse, error) {
	resp := make([]BookingResponse, 0, len(views))
	if err := copier.Copy(&resp, views); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromCheckoutResult(result *commands.CheckoutResult) *CheckoutResponse {
	resp := &CheckoutResponse{
		Valid:            result.Valid,
		Problems:         result.Problems,
		DiscountEligible: result.DiscountEligible,
		RequiresPayment:  result.RequiresPayment,
		Bookings:         make([]CheckoutBookingResponse, 0, len(result.Bookings)),
	}
	if resp.Problems == nil {
		resp.Problems = []string{}
	}
	for _, rb := range result.Bookings {
		resp.Bookings = append(resp.Bookings, CheckoutBookingResponse{
			ID:        rb.Booking.ID(),
			Code:      rb.Code,
			Activity:  rb.Booking.Activity().Label(),
			Facility:  rb.Booking.Facility().Label(),
			Start:     rb.Booking.Start(),
			End:       rb.Booking.End(),
			Attendees: rb.Booking.AttendeeCount(),
		})
	}
	return resp
}
