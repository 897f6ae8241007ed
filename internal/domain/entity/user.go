// internal/domain/entity/user.go
package entity

import (
	"time"
)

// User is a registered account. The password is stored as a bcrypt hash and
// is never serialized to JSON. AssignedFlights holds flight identifiers the
// user wants status updates for, with set semantics.
type User struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Username        string    `json:"username" bson:"username"`
	Email           string    `json:"email" bson:"email"`
	Phone           string    `json:"phone" bson:"phone"`
	PasswordHash    string    `json:"-" bson:"password_hash"`
	FCMToken        string    `json:"fcm_token,omitempty" bson:"fcm_token,omitempty"`
	AssignedFlights []string  `json:"assigned_flights" bson:"assigned_flights"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
