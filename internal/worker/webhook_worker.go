package worker

import (
	"github.com/Dee126/DSAR-sub009/internal/service"
)

// StartWebhookWorker registers event forwarding handlers.
func StartWebhookWorker(webhookService *service.WebhookService) {
	if webhookService == nil {
		return
	}
	webhookService.RegisterHandlers()
}
