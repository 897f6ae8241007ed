// internal/domain/entity/notification.go
package entity

import (
	"fmt"
	"time"
)

// Notification is a write-once audit record of one fan-out to one user,
// independent of whether any channel delivery succeeded.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	FlightID  string    `json:"flight_id" bson:"flight_id"`
	Message   string    `json:"message" bson:"message"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Username  string    `json:"username" bson:"username"`
	Recipient string    `json:"recipient" bson:"recipient"`
}

// ComposeMessage builds the notification text for an updated flight.
func ComposeMessage(flight *Flight) string {
	return fmt.Sprintf("Your flight %s is %s. Departure gate: %s.",
		flight.FlightID, flight.Status, flight.DepartureGate)
}
