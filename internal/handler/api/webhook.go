package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"leisure-booking/internal/domain/user"
	reqdto "leisure-booking/internal/handler/dto/request"
	resdto "leisure-booking/internal/handler/dto/response"
	"leisure-booking/internal/pkg/config"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
)

const signatureHeader = "X-Payment-Signature"

// WebhookHandler receives payment provider callbacks. A payment.succeeded
// event commits the payer's basket; subscription.updated adjusts their
// membership plan.
type WebhookHandler struct {
	checkout    commands.CheckoutCommands
	memberships commands.MembershipCommands
	cfg         config.PaymentConfig
}

func NewWebhookHandler(checkout commands.CheckoutCommands, memberships commands.MembershipCommands, cfg config.PaymentConfig) *WebhookHandler {
	return &WebhookHandler{
		checkout:    checkout,
		memberships: memberships,
		cfg:         cfg,
	}
}

// @Summary Payment webhook
// @Description Provider callback, authenticated by HMAC signature over the raw body
// @Tags webhook
// @Accept json
// @Success 200 {object} resdto.MessageResponse
// @Failure 401 {object} map[string]string
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable body"})
		return
	}

	if !h.verifySignature(body, c.GetHeader(signatureHeader)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event reqdto.PaymentWebhookRequest
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	switch event.Type {
	case "payment.succeeded":
		h.handlePaymentSucceeded(c, event)
	case "subscription.updated":
		h.handleSubscriptionUpdated(c, event)
	default:
		// Binding restricts Type, but the provider may add event kinds;
		// acknowledge so it stops retrying.
		c.JSON(http.StatusOK, resdto.MessageResponse{Message: "ignored"})
	}
}

func (h *WebhookHandler) handlePaymentSucceeded(c *gin.Context, event reqdto.PaymentWebhookRequest) {
	_, err := h.checkout.CommitConfirmed(c.Request.Context(), event.UserID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmptyBasket):
			// Already committed on a retried delivery.
			c.JSON(http.StatusOK, resdto.MessageResponse{Message: "nothing to commit"})
		case errors.Is(err, errs.ErrCheckoutInvalid):
			// The basket went stale between payment and delivery. Respond 200
			// so the provider stops retrying; the customer resolves it in app.
			c.JSON(http.StatusOK, resdto.MessageResponse{Message: "basket no longer valid"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit booking"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "booking confirmed"})
}

func (h *WebhookHandler) handleSubscriptionUpdated(c *gin.Context, event reqdto.PaymentWebhookRequest) {
	plan, err := user.NewMembership(event.Plan)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown membership plan"})
		return
	}

	if err := h.memberships.SetPlan(c.Request.Context(), event.UserID, plan); err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update membership"})
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "membership updated"})
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
