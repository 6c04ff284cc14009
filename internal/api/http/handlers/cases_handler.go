package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dee126/DSAR-sub009/internal/api/dto"
	"github.com/Dee126/DSAR-sub009/internal/auth"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/lifecycle"
	"github.com/Dee126/DSAR-sub009/internal/repository"
	"github.com/Dee126/DSAR-sub009/internal/service"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// CasesHandler manages case lifecycle endpoints.
type CasesHandler struct {
	service *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService) *CasesHandler {
	return &CasesHandler{service: caseService}
}

// CreateCase POST /cases.
func (h *CasesHandler) CreateCase(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Type == "" {
		return apperrors.NewValidationError("type required", nil)
	}

	cs, dl, err := h.service.CreateCase(c.Context(), principal.TenantID(), principal.Actor.ID, service.CaseCreateInput{
		Type:       req.Type,
		Priority:   req.Priority,
		SubjectRef: req.SubjectRef,
		ReceivedAt: req.ReceivedAt,
	})
	if err != nil {
		return err
	}
	summary := caseSummary(cs)
	summary.Deadline = deadlineResponse(dl)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": summary})
}

// ListCases GET /cases.
func (h *CasesHandler) ListCases(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	filter := parseCaseQuery(c)
	now := parseNow(c)
	pairs, err := h.service.ListCases(c.Context(), principal.TenantID(), filter, now)
	if err != nil {
		return err
	}
	items := make([]dto.CaseSummary, 0, len(pairs))
	for i := range pairs {
		summary := caseSummary(&pairs[i].Case)
		summary.Deadline = deadlineResponse(pairs[i].Deadline)
		items = append(items, summary)
	}
	return c.JSON(fiber.Map{"data": items, "now": now})
}

// GetCase GET /cases/:id.
func (h *CasesHandler) GetCase(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	now := parseNow(c)
	detail, err := h.service.GetCase(c.Context(), principal.TenantID(), c.Params("id"), now)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseDetail(detail), "now": now})
}

// Transition POST /cases/:id/transition.
func (h *CasesHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.To == "" {
		return apperrors.NewValidationError("to status required", nil)
	}

	detail, err := h.service.Transition(c.Context(), principal.TenantID(), c.Params("id"), principal.Actor.ID, req.To, req.Reason, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseDetail(detail)})
}

// Extend POST /cases/:id/extend. Routing requires the ADMIN role.
func (h *CasesHandler) Extend(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ExtendRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Days <= 0 {
		return apperrors.NewValidationError("days must be > 0", nil)
	}

	detail, err := h.service.Extend(c.Context(), principal.TenantID(), c.Params("id"), principal.Actor.ID, req.Days, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseDetail(detail)})
}

func parseCaseQuery(c *fiber.Ctx) repository.CaseFilter {
	filter := repository.CaseFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.CaseStatus(strings.TrimSpace(part)))
		}
	}
	if typeStr := c.Query("type"); typeStr != "" {
		for _, part := range strings.Split(typeStr, ",") {
			filter.Types = append(filter.Types, domain.CaseType(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.CasePriority(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

// parseNow reads the optional reference instant for deadline classification;
// the server clock is the default.
func parseNow(c *fiber.Ctx) time.Time {
	if val := c.Query("now"); val != "" {
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func caseSummary(cs *domain.Case) dto.CaseSummary {
	return dto.CaseSummary{
		ID:         cs.ID,
		CaseNumber: cs.CaseNumber,
		Type:       cs.Type,
		Priority:   cs.Priority,
		Status:     cs.Status,
		ReceivedAt: cs.ReceivedAt,
		CreatedAt:  cs.CreatedAt,
		UpdatedAt:  cs.UpdatedAt,
	}
}

func deadlineResponse(dl *domain.Deadline) *dto.DeadlineResponse {
	if dl == nil {
		return nil
	}
	return &dto.DeadlineResponse{
		BaseDueAt:       dl.BaseDueAt,
		ExtensionDays:   dl.ExtensionDays,
		TotalPausedDays: dl.TotalPausedDays,
		Paused:          dl.Paused(),
		EffectiveDueAt:  dl.EffectiveDueAt,
		CurrentRisk:     dl.CurrentRisk,
		DaysRemaining:   dl.DaysRemaining,
	}
}

func caseDetail(detail *service.CaseDetail) dto.CaseDetailResponse {
	history := make([]dto.TransitionRecordResponse, 0, len(detail.History))
	for _, entry := range detail.History {
		history = append(history, dto.TransitionRecordResponse{
			ID:         entry.ID,
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			ChangedBy:  entry.ChangedBy,
			Reason:     entry.Reason,
			ChangedAt:  entry.ChangedAt,
		})
	}
	dl := detail.Deadline
	return dto.CaseDetailResponse{
		ID:         detail.Case.ID,
		CaseNumber: detail.Case.CaseNumber,
		Type:       detail.Case.Type,
		Priority:   detail.Case.Priority,
		Status:     detail.Case.Status,
		SubjectRef: detail.Case.SubjectRef,
		ReceivedAt: detail.Case.ReceivedAt,
		CreatedAt:  detail.Case.CreatedAt,
		UpdatedAt:  detail.Case.UpdatedAt,
		Deadline:   *deadlineResponse(&dl),
		History:    history,
		NextStates: lifecycle.ValidNextStates(detail.Case.Status),
	}
}
