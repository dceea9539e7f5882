package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	resdto "leisure-booking/internal/handler/dto/response"
	"leisure-booking/internal/handler/httperr"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/internal/usecase/queries"
)

type BookingHandler struct {
	attendance commands.AttendanceCommands
	bookings   queries.BookingQueries
}

func NewBookingHandler(attendance commands.AttendanceCommands, bookings queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		attendance: attendance,
		bookings:   bookings,
	}
}

// @Summary Upcoming bookings
// @Description The caller's not-yet-started bookings grouped by day
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.DayGroupResponse
// @Router /bookings [get]
func (h *BookingHandler) Upcoming(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	groups, err := h.bookings.UpcomingForUser(c.Request.Context(), scope)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load bookings", nil)
		return
	}

	resp, err := resdto.FromDayGroupViews(groups)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Booking history
// @Description Everything the caller is or was booked into
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.BookingResponse
// @Router /bookings/history [get]
func (h *BookingHandler) History(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	views, err := h.bookings.HistoryForUser(c.Request.Context(), scope)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load bookings", nil)
		return
	}

	resp, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel attendance
// @Description Remove the caller from a booking; the booking disappears with
// @Description its last attendee
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking id"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	if err := h.attendance.Cancel(c.Request.Context(), bookingID, scope); err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, errs.ErrNotAnAttendee):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not an attendee of this booking", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to cancel attendance", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
