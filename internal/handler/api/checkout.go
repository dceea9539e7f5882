package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resdto "leisure-booking/internal/handler/dto/response"
	"leisure-booking/internal/handler/httperr"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
)

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
}

func NewCheckoutHandler(checkout commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// @Summary Review checkout
// @Description Dry-run the basket against the live timetable and ledger
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 409 {object} httperr.Response
// @Router /checkout [get]
func (h *CheckoutHandler) Review(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	result, err := h.checkout.Resolve(c.Request.Context(), scope)
	if err != nil {
		if errors.Is(err, errs.ErrEmptyBasket) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Basket is empty", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resolve checkout", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

// @Summary Confirm checkout
// @Description Persist the basket's bookings. Members commit directly; others
// @Description confirm after the payment webhook lands.
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 402 {object} resdto.CheckoutResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.CheckoutResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	scope, ok := bookingScope(c)
	if !ok {
		return
	}

	result, err := h.checkout.Commit(c.Request.Context(), scope)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmptyBasket):
			httperr.AbortWithError(c, http.StatusConflict, err, "Basket is empty", nil)
		case errors.Is(err, errs.ErrCheckoutInvalid):
			// The verdict carries the customer-facing problems.
			c.JSON(http.StatusUnprocessableEntity, resdto.FromCheckoutResult(result))
		case errors.Is(err, errs.ErrPaymentRequired):
			// Nothing persisted yet; the payment webhook completes the commit.
			c.JSON(http.StatusPaymentRequired, resdto.FromCheckoutResult(result))
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to confirm checkout", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}
