// internal/interface/notifier/sms.go
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/pkg/logger"
)

// SMSNotifier sends SMS through the Twilio REST API
type SMSNotifier struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
	logger     logger.Logger
}

// NewSMSNotifier creates a new Twilio SMS notifier
func NewSMSNotifier(accountSID, authToken, from string, logger logger.Logger) *SMSNotifier {
	return &SMSNotifier{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    "https://api.twilio.com",
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Name returns the channel name
func (s *SMSNotifier) Name() string {
	return entity.ChannelSMS
}

// Send delivers one SMS. The recipient is a phone number.
func (s *SMSNotifier) Send(ctx context.Context, msg entity.OutboundMessage) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	data := url.Values{}
	data.Set("To", msg.Recipient)
	data.Set("From", s.from)
	data.Set("Body", msg.Body)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}

	s.logger.Debug("SMS sent", "to", msg.Recipient)
	return nil
}
