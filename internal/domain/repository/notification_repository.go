package repository

import (
	"context"

	"flightstatus-service/internal/domain/entity"
)

// NotificationRepository defines the interface for notification audit records
type NotificationRepository interface {
	Insert(ctx context.Context, notification *entity.Notification) (string, error)
}
