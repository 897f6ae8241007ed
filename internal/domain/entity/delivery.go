// internal/domain/entity/delivery.go
package entity

import (
	"time"
)

// Delivery statuses
const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)

// Channel names
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
	ChannelPush  = "push"
)

// DeliveryAttempt is the final per-channel outcome of delivering one
// notification: one record per channel attempted, written after retries
// are exhausted or delivery succeeds.
type DeliveryAttempt struct {
	ID             uint      `json:"id"`
	NotificationID string    `json:"notification_id"`
	FlightID       string    `json:"flight_id"`
	Channel        string    `json:"channel"`
	Recipient      string    `json:"recipient"`
	Status         string    `json:"status"`
	Attempts       int       `json:"attempts"`
	LastError      string    `json:"last_error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
