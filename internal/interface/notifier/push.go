// internal/interface/notifier/push.go
package notifier

import (
	"context"
	"fmt"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/pkg/logger"

	"golang.org/x/oauth2"
	fcm "google.golang.org/api/fcm/v1"
	"google.golang.org/api/option"
)

// PushNotifier sends push notifications through the FCM HTTP v1 API
type PushNotifier struct {
	service   *fcm.Service
	projectID string
	logger    logger.Logger
}

// NewPushNotifier creates a new FCM push notifier
func NewPushNotifier(ctx context.Context, tokenSource oauth2.TokenSource, projectID string, logger logger.Logger) (*PushNotifier, error) {
	service, err := fcm.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create FCM service: %w", err)
	}

	return &PushNotifier{
		service:   service,
		projectID: projectID,
		logger:    logger,
	}, nil
}

// Name returns the channel name
func (p *PushNotifier) Name() string {
	return entity.ChannelPush
}

// Send delivers one push notification. The recipient is a device token.
func (p *PushNotifier) Send(ctx context.Context, msg entity.OutboundMessage) error {
	request := &fcm.SendMessageRequest{
		Message: &fcm.Message{
			Token: msg.Recipient,
			Notification: &fcm.Notification{
				Title: msg.Subject,
				Body:  msg.Body,
			},
		},
	}

	parent := fmt.Sprintf("projects/%s", p.projectID)
	sent, err := p.service.Projects.Messages.Send(parent, request).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send push message: %w", err)
	}

	p.logger.Debug("Push notification sent", "name", sent.Name)
	return nil
}
