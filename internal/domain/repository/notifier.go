package repository

import (
	"context"

	"flightstatus-service/internal/domain/entity"
)

// Notifier delivers one message over a single external channel. The
// dispatcher owns retries and outcome recording; implementations only
// report whether this attempt succeeded.
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg entity.OutboundMessage) error
}
