package service

import (
	"context"
	"io"
	"time"

	"github.com/Dee126/DSAR-sub009/internal/calendar"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/reporting"
	"github.com/Dee126/DSAR-sub009/internal/repository"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// ReportService exposes the tenant-wide reporting surface. Both operations
// are pure reads over persisted state; risk is recomputed from stored inputs
// through the same calculator the per-case path uses.
type ReportService struct {
	cases     repository.CaseRepository
	holidays  repository.HolidayRepository
	tenantCfg repository.TenantConfigRepository
}

// NewReportService constructs the service.
func NewReportService(cases repository.CaseRepository, holidays repository.HolidayRepository, tenantCfg repository.TenantConfigRepository) *ReportService {
	return &ReportService{cases: cases, holidays: holidays, tenantCfg: tenantCfg}
}

// GetSummary computes the fleet-wide rollup for the tenant at now.
func (s *ReportService) GetSummary(ctx context.Context, tenantID string, now time.Time) (reporting.Summary, error) {
	pairs, cfg, holidays, err := s.load(ctx, tenantID)
	if err != nil {
		return reporting.Summary{}, err
	}
	return reporting.Summarize(pairs, now, cfg, holidays), nil
}

// GetRows returns one export row per case for CSV/JSON export.
func (s *ReportService) GetRows(ctx context.Context, tenantID string, now time.Time) ([]reporting.Row, error) {
	pairs, cfg, holidays, err := s.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return reporting.Rows(pairs, now, cfg, holidays), nil
}

// ExportCSV streams the export rows as CSV.
func (s *ReportService) ExportCSV(ctx context.Context, w io.Writer, tenantID string, now time.Time) error {
	rows, err := s.GetRows(ctx, tenantID, now)
	if err != nil {
		return err
	}
	return reporting.WriteCSV(w, rows)
}

func (s *ReportService) load(ctx context.Context, tenantID string) ([]domain.CaseWithDeadline, domain.TenantSlaConfig, calendar.HolidaySet, error) {
	cfg, err := s.tenantCfg.Get(ctx, tenantID)
	if err != nil {
		return nil, domain.TenantSlaConfig{}, nil, err
	}
	if cfg.BaseSlaDays <= 0 || !cfg.CalendarPolicy.Valid() {
		return nil, domain.TenantSlaConfig{}, nil, apperrors.NewInvalidArgument("tenant SLA configuration incomplete", map[string]any{"tenant_id": tenantID})
	}

	pairs, err := s.cases.ListWithDeadlines(ctx, tenantID)
	if err != nil {
		return nil, domain.TenantSlaConfig{}, nil, err
	}

	var holidaySet calendar.HolidaySet
	if cfg.CalendarPolicy == domain.PolicyBusinessDays {
		holidays, err := s.holidays.ListByTenant(ctx, tenantID)
		if err != nil {
			return nil, domain.TenantSlaConfig{}, nil, err
		}
		days := make([]time.Time, 0, len(holidays))
		for _, h := range holidays {
			days = append(days, h.Day)
		}
		holidaySet = calendar.NewHolidaySet(days)
	}
	return pairs, *cfg, holidaySet, nil
}
