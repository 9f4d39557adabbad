package webhook

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bekzodm/tuxumpos/internal/config"
)

// Client exposes the outbound alert operations used by the application.
type Client interface {
	SendText(ctx context.Context, req SendTextRequest) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.AlertsConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.WebhookURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &APIClient{httpClient: restyClient}
}

// SendTextRequest represents a plain text alert payload.
type SendTextRequest struct {
	Body string
}

// apiError represents an error payload returned by the webhook endpoint.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendText posts the message body to the configured endpoint.
func (c *APIClient) SendText(ctx context.Context, req SendTextRequest) error {
	payload := map[string]any{"text": req.Body}
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(apiErr).
		Post("")
	if err != nil {
		return fmt.Errorf("send webhook alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
