package repository

import (
	"context"

	"flightstatus-service/internal/domain/entity"
)

// DeliveryRepository records per-channel delivery outcomes
type DeliveryRepository interface {
	Record(ctx context.Context, attempt *entity.DeliveryAttempt) error
}
