package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"leisure-booking/internal/domain/schedule"
	resdto "leisure-booking/internal/handler/dto/response"
	"leisure-booking/internal/handler/httperr"
	"leisure-booking/internal/handler/middleware"
	"leisure-booking/internal/usecase/queries"
)

const dateQueryLayout = "2006-01-02"

type TimetableHandler struct {
	timetable queries.TimetableQueries
}

func NewTimetableHandler(timetable queries.TimetableQueries) *TimetableHandler {
	return &TimetableHandler{timetable: timetable}
}

// @Summary Day timetable
// @Description Bookable slots for one date, filtered to what the viewer can book
// @Tags timetable
// @Security BearerAuth
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param kind query string false "Activity kind filter: general, class, team, all" default(all)
// @Success 200 {object} resdto.DayTimetableResponse
// @Failure 400 {object} httperr.Response
// @Router /timetable [get]
func (h *TimetableHandler) Day(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	date, err := time.Parse(dateQueryLayout, c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	kindParam := c.DefaultQuery("kind", string(schedule.KindAll))
	kind, err := schedule.NewActivityKind(kindParam)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown activity kind", nil)
		return
	}

	view, err := h.timetable.DayView(c.Request.Context(), date, kind, userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load timetable", nil)
		return
	}

	resp, err := resdto.FromDayTimetableView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List facilities
// @Description Facility opening hours and capacities
// @Tags timetable
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.FacilityResponse
// @Router /facilities [get]
func (h *TimetableHandler) Facilities(c *gin.Context) {
	views, err := h.timetable.Facilities(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load facilities", nil)
		return
	}

	resp, err := resdto.FromFacilityViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
