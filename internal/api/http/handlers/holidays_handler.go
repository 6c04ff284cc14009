package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dee126/DSAR-sub009/internal/api/dto"
	"github.com/Dee126/DSAR-sub009/internal/auth"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/service"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

const holidayDayLayout = "2006-01-02"

// HolidaysHandler manages the tenant holiday calendar.
type HolidaysHandler struct {
	service *service.HolidayService
}

// NewHolidaysHandler constructs handler.
func NewHolidaysHandler(holidayService *service.HolidayService) *HolidaysHandler {
	return &HolidaysHandler{service: holidayService}
}

// List GET /holidays.
func (h *HolidaysHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	holidays, err := h.service.ListHolidays(c.Context(), principal.TenantID())
	if err != nil {
		return err
	}
	items := make([]dto.HolidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		items = append(items, holidayResponse(holiday))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /holidays.
func (h *HolidaysHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	day, err := time.Parse(holidayDayLayout, req.Day)
	if err != nil {
		return apperrors.NewValidationError("day must be YYYY-MM-DD", nil)
	}

	holiday, err := h.service.AddHoliday(c.Context(), principal.TenantID(), principal.Actor.ID, day, req.Name, req.Locale)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": holidayResponse(*holiday)})
}

// Delete DELETE /holidays/:date.
func (h *HolidaysHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	day, err := time.Parse(holidayDayLayout, c.Params("date"))
	if err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
	}
	if err := h.service.RemoveHoliday(c.Context(), principal.TenantID(), day); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func holidayResponse(holiday domain.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		ID:     holiday.ID,
		Day:    holiday.Day,
		Name:   holiday.Name,
		Locale: holiday.Locale,
	}
}
