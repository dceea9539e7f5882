package response

import (
	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
