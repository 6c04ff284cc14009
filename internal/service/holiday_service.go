package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/events"
	"github.com/Dee126/DSAR-sub009/internal/repository"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// HolidayService manages the tenant holiday calendar feeding business-day
// deadline computation.
type HolidayService struct {
	holidays   repository.HolidayRepository
	dispatcher events.Dispatcher
}

// NewHolidayService constructs the service.
func NewHolidayService(holidays repository.HolidayRepository, dispatcher events.Dispatcher) *HolidayService {
	return &HolidayService{holidays: holidays, dispatcher: dispatcher}
}

// AddHoliday records a tenant non-working day.
func (s *HolidayService) AddHoliday(ctx context.Context, tenantID, actorID string, day time.Time, name, locale string) (*domain.Holiday, error) {
	holiday := &domain.Holiday{
		TenantID: tenantID,
		Day:      day.UTC().Truncate(24 * time.Hour),
		Name:     strings.TrimSpace(name),
		Locale:   strings.TrimSpace(locale),
	}
	if err := s.holidays.Create(ctx, holiday); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventHolidayCalendared,
			TenantID:  tenantID,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.HolidayCalendaredPayload{
				Day:    holiday.Day,
				Name:   holiday.Name,
				Locale: holiday.Locale,
			},
		})
	}
	return holiday, nil
}

// RemoveHoliday deletes the tenant holiday on the given date.
func (s *HolidayService) RemoveHoliday(ctx context.Context, tenantID string, day time.Time) error {
	err := s.holidays.Delete(ctx, tenantID, day.UTC().Truncate(24*time.Hour))
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("holiday", map[string]any{"day": day.Format("2006-01-02")})
	}
	return err
}

// ListHolidays returns the tenant's holiday calendar.
func (s *HolidayService) ListHolidays(ctx context.Context, tenantID string) ([]domain.Holiday, error) {
	return s.holidays.ListByTenant(ctx, tenantID)
}
