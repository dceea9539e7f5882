package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leisure-booking/internal/domain/basket"
	"leisure-booking/internal/domain/user"
	reqdto "leisure-booking/internal/handler/dto/request"
	resdto "leisure-booking/internal/handler/dto/response"
	"leisure-booking/internal/handler/httperr"
	"leisure-booking/internal/handler/middleware"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/internal/usecase/queries"
)

type BasketHandler struct {
	baskets     commands.BasketCommands
	basketViews queries.BasketQueries
}

func NewBasketHandler(baskets commands.BasketCommands, basketViews queries.BasketQueries) *BasketHandler {
	return &BasketHandler{
		baskets:     baskets,
		basketViews: basketViews,
	}
}

// @Summary View basket
// @Description The caller's provisional selection, decoded for display
// @Tags basket
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.BasketResponse
// @Router /basket [get]
func (h *BasketHandler) Get(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	view, err := h.basketViews.View(c.Request.Context(), scope)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load basket", nil)
		return
	}

	resp, err := resdto.FromBasketView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Add slots to basket
// @Description Append one or more slot codes to the caller's basket
// @Tags basket
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.AddToBasketRequest true "Slot codes"
// @Success 200 {object} resdto.BasketResponse
// @Failure 400 {object} httperr.Response
// @Router /basket [post]
func (h *BasketHandler) Add(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	var req reqdto.AddToBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if _, err := h.baskets.AddCodes(c.Request.Context(), scope, req.Codes); err != nil {
		if errors.Is(err, errs.ErrInvalidSlotCode) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unrecognised slot code", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update basket", nil)
		return
	}

	h.Get(c)
}

// @Summary Remove a basket item
// @Description Drop the selection at the given position
// @Tags basket
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.RemoveFromBasketRequest true "Item position"
// @Success 200 {object} resdto.BasketResponse
// @Failure 400 {object} httperr.Response
// @Router /basket/remove [post]
func (h *BasketHandler) Remove(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	var req reqdto.RemoveFromBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if _, err := h.baskets.Remove(c.Request.Context(), scope, *req.Index); err != nil {
		if errors.Is(err, basket.ErrIndexOutOfRange) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No basket item at that position", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update basket", nil)
		return
	}

	h.Get(c)
}

// @Summary Clear basket
// @Tags basket
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /basket [delete]
func (h *BasketHandler) Clear(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	if err := h.baskets.Clear(c.Request.Context(), scope); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to clear basket", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// bookingScope resolves whose basket and bookings a request operates on.
// Customers always act on their own; staff may act on a customer's behalf by
// naming them in the on_behalf_of query parameter.
func bookingScope(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}

	onBehalf := c.Query("on_behalf_of")
	if onBehalf == "" {
		return userID, true
	}

	role, _ := middleware.GetUserRole(c)
	if role != user.RoleStaff && role != user.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only staff can act on behalf of a customer"})
		return uuid.Nil, false
	}

	customerID, err := uuid.Parse(onBehalf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return uuid.Nil, false
	}
	return customerID, true
}
