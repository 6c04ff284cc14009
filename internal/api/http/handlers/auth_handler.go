package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Dee126/DSAR-sub009/internal/api/dto"
	"github.com/Dee126/DSAR-sub009/internal/service"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// AuthHandler manages authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.TenantID) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("tenant_id, email, password required", nil)
	}

	token, expiresAt, actor, err := h.service.Login(c.Context(), req.TenantID, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		ActorID:   actor.ID,
		Role:      actor.Role,
	}})
}
