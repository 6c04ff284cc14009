package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Dee126/DSAR-sub009/internal/config"
	"github.com/Dee126/DSAR-sub009/internal/events"
)

// WebhookService forwards change events to the configured webhook endpoint.
// The lifecycle core only describes changes; delivery is this collaborator's
// concern and remains a logging stub until the delivery service lands.
type WebhookService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.WebhookConfig
}

// NewWebhookService creates the service.
func NewWebhookService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.WebhookConfig) *WebhookService {
	return &WebhookService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (w *WebhookService) RegisterHandlers() {
	if w.dispatcher == nil {
		return
	}
	w.dispatcher.Subscribe(events.EventCaseCreated, w.forward)
	w.dispatcher.Subscribe(events.EventCaseTransitioned, w.forward)
	w.dispatcher.Subscribe(events.EventDeadlineExtended, w.forward)
	w.dispatcher.Subscribe(events.EventHolidayCalendared, w.forward)
}

func (w *WebhookService) forward(ctx context.Context, event events.Event) error {
	w.logger.Info("case event",
		zap.String("event_type", string(event.Type)),
		zap.String("tenant_id", event.TenantID),
		zap.String("case_id", event.CaseID),
		zap.String("actor_id", event.ActorID),
	)
	if strings.TrimSpace(w.cfg.URL) == "" {
		return nil
	}
	w.logger.Debug("webhook forward",
		zap.String("url", w.cfg.URL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
	)
	return nil
}
