package dto

import (
	"time"

	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns an issued token.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	ActorID   string           `json:"actor_id"`
	Role      domain.ActorRole `json:"role"`
}
