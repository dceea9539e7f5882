package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/domain/user"
	reqdto "leisure-booking/internal/handler/dto/request"
	resdto "leisure-booking/internal/handler/dto/response"
	"leisure-booking/internal/handler/httperr"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/internal/usecase/queries"
)

type AdminHandler struct {
	admin       commands.AdminCommands
	memberships commands.MembershipCommands
	timetable   queries.TimetableQueries
}

func NewAdminHandler(admin commands.AdminCommands, memberships commands.MembershipCommands, timetable queries.TimetableQueries) *AdminHandler {
	return &AdminHandler{
		admin:       admin,
		memberships: memberships,
		timetable:   timetable,
	}
}

// @Summary List timetable entries
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.EntryResponse
// @Router /admin/timetable [get]
func (h *AdminHandler) ListEntries(c *gin.Context) {
	views, err := h.timetable.Entries(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load entries", nil)
		return
	}

	resp, err := resdto.FromEntryViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create timetable entry
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.TimetableEntryRequest true "Entry"
// @Success 201 {object} resdto.EntryResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/timetable [post]
func (h *AdminHandler) CreateEntry(c *gin.Context) {
	var req reqdto.TimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entry, err := h.admin.CreateEntry(c.Request.Context(), req.ToInput())
	if err != nil {
		h.abortEntryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entryResponse(entry))
}

// @Summary Update timetable entry
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Entry id"
// @Param request body reqdto.TimetableEntryRequest true "Entry"
// @Success 200 {object} resdto.EntryResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/timetable/{id} [put]
func (h *AdminHandler) UpdateEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid entry id", nil)
		return
	}

	var req reqdto.TimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entry, err := h.admin.UpdateEntry(c.Request.Context(), id, req.ToInput())
	if err != nil {
		if errors.Is(err, errs.ErrTimetableEntryNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Timetable entry not found", nil)
			return
		}
		h.abortEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, entryResponse(entry))
}

// @Summary Delete timetable entry
// @Description Existing bookings stay; their codes go stale at checkout
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Entry id"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/timetable/{id} [delete]
func (h *AdminHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid entry id", nil)
		return
	}

	if err := h.admin.DeleteEntry(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrTimetableEntryNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Timetable entry not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to delete entry", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Configure facility
// @Description Set a facility's opening hours and capacity ceiling
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param facility path int true "Facility id"
// @Param request body reqdto.FacilityRequest true "Facility configuration"
// @Success 200 {object} resdto.FacilityResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/facilities/{facility} [put]
func (h *AdminHandler) SaveFacility(c *gin.Context) {
	var uri struct {
		Facility int `uri:"facility" binding:"gte=0"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid facility id", nil)
		return
	}

	var req reqdto.FacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	f, err := h.admin.SaveFacility(c.Request.Context(), uri.Facility, *req.OpenHour, *req.CloseHour, *req.MaxCapacity)
	if err != nil {
		h.abortEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FacilityResponse{
		Facility:    int(f.ID()),
		Label:       f.ID().Label(),
		OpenHour:    f.OpenHour(),
		CloseHour:   f.CloseHour(),
		MaxCapacity: f.MaxCapacity(),
	})
}

// @Summary Set a customer's membership
// @Description Over-the-counter plan changes by staff
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Customer id"
// @Param request body reqdto.SetMembershipRequest true "Plan"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/members/{id}/membership [put]
func (h *AdminHandler) SetMembership(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid customer id", nil)
		return
	}

	var req reqdto.SetMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	plan, err := user.NewMembership(req.Plan)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown membership plan", nil)
		return
	}

	if err := h.memberships.SetPlan(c.Request.Context(), customerID, plan); err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Customer not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update membership", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) abortEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrUnknownActivity),
		errors.Is(err, schedule.ErrUnknownFacility),
		errors.Is(err, schedule.ErrUnknownWeekday),
		errors.Is(err, schedule.ErrInvalidHourRange),
		errors.Is(err, schedule.ErrInvalidCapacity):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid timetable data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to save changes", nil)
	}
}

func entryResponse(entry *schedule.TimetableEntry) resdto.EntryResponse {
	return resdto.EntryResponse{
		ID:        entry.ID(),
		Activity:  int(entry.Activity()),
		Facility:  int(entry.Facility()),
		Weekday:   int(entry.Weekday()),
		OpenHour:  entry.OpenHour(),
		CloseHour: entry.CloseHour(),
	}
}
