package request

import (
	"github.com/google/uuid"
)

// PaymentWebhookRequest is the payment provider's event envelope. The raw
// body is HMAC-verified before this is decoded.
type PaymentWebhookRequest struct {
	Type   string    `json:"type" binding:"required,oneof=payment.succeeded subscription.updated"`
	UserID uuid.UUID `json:"user_id" binding:"required"`
	// Plan accompanies subscription.updated events.
	Plan string `json:"plan,omitempty" binding:"omitempty,oneof=none month year"`
}
