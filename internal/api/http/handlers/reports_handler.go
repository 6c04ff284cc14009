package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/Dee126/DSAR-sub009/internal/auth"
	"github.com/Dee126/DSAR-sub009/internal/service"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// ReportsHandler exposes the tenant-wide reporting surface.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Summary GET /reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	now := parseNow(c)
	summary, err := h.service.GetSummary(c.Context(), principal.TenantID(), now)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary, "now": now})
}

// Export GET /reports/export?format=csv|json.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	now := parseNow(c)

	switch c.Query("format", "json") {
	case "csv":
		var buf bytes.Buffer
		if err := h.service.ExportCSV(c.Context(), &buf, principal.TenantID(), now); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="cases.csv"`)
		return c.Send(buf.Bytes())
	case "json":
		rows, err := h.service.GetRows(c.Context(), principal.TenantID(), now)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": rows, "now": now})
	default:
		return apperrors.NewValidationError("format must be csv or json", nil)
	}
}
