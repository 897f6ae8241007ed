// internal/interface/notifier/email.go
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/pkg/logger"
)

// EmailNotifier sends transactional email through the SendGrid v3 API
type EmailNotifier struct {
	apiKey      string
	senderEmail string
	endpoint    string
	client      *http.Client
	logger      logger.Logger
}

// NewEmailNotifier creates a new SendGrid email notifier
func NewEmailNotifier(apiKey, senderEmail string, logger logger.Logger) *EmailNotifier {
	return &EmailNotifier{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		endpoint:    "https://api.sendgrid.com/v3/mail/send",
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// Name returns the channel name
func (e *EmailNotifier) Name() string {
	return entity.ChannelEmail
}

// Send delivers one email. The recipient is an email address.
func (e *EmailNotifier) Send(ctx context.Context, msg entity.OutboundMessage) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": msg.Recipient}}},
		},
		"from":    map[string]string{"email": e.senderEmail},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/html", "value": fmt.Sprintf("<strong>%s</strong>", msg.Body)},
		},
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.endpoint, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	e.logger.Debug("Email sent", "to", msg.Recipient, "subject", msg.Subject)
	return nil
}
