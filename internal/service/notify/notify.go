package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/bekzodm/tuxumpos/pkg/clients/webhook"
)

// Notifier delivers user-facing alerts to an external channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// WebhookNotifier pushes alerts to a configured HTTP webhook.
type WebhookNotifier struct {
	client webhook.Client
	logger *zap.Logger
}

// NewWebhookNotifier wires a notifier over the given webhook client.
func NewWebhookNotifier(client webhook.Client, logger *zap.Logger) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{client: client, logger: logger}
}

// Notify posts the message to the webhook endpoint.
func (n *WebhookNotifier) Notify(ctx context.Context, message string) error {
	if err := n.client.SendText(ctx, webhook.SendTextRequest{Body: message}); err != nil {
		return err
	}
	n.logger.Debug("alert delivered", zap.Int("length", len(message)))
	return nil
}
