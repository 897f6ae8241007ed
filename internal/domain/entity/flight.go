// internal/domain/entity/flight.go
package entity

import (
	"encoding/json"
	"time"
)

// Flight is a flight document. Beyond the identifier, status and departure
// gate no schema is enforced: any extra fields supplied by the caller are
// kept verbatim in Extra and stored inline in the document.
type Flight struct {
	ID            string                 `json:"-" bson:"_id,omitempty"`
	FlightID      string                 `json:"-" bson:"flight_id"`
	Status        string                 `json:"-" bson:"status"`
	DepartureGate string                 `json:"-" bson:"departure_gate"`
	Extra         map[string]interface{} `json:"-" bson:",inline"`
	CreatedAt     time.Time              `json:"-" bson:"created_at"`
	UpdatedAt     time.Time              `json:"-" bson:"updated_at"`
}

// FlightFromFields builds a Flight from an arbitrary JSON object, lifting
// the known fields and keeping the rest inline.
func FlightFromFields(fields map[string]interface{}) *Flight {
	flight := &Flight{Extra: make(map[string]interface{})}
	for key, value := range fields {
		switch key {
		case "_id", "id":
			// identifiers are always generated server side
		case "flight_id":
			flight.FlightID, _ = value.(string)
		case "status":
			flight.Status, _ = value.(string)
		case "departure_gate":
			flight.DepartureGate, _ = value.(string)
		default:
			flight.Extra[key] = value
		}
	}
	return flight
}

// MarshalJSON flattens the inline extra fields back into the object.
func (f Flight) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(f.Extra)+6)
	for key, value := range f.Extra {
		doc[key] = value
	}
	doc["id"] = f.ID
	doc["flight_id"] = f.FlightID
	doc["status"] = f.Status
	doc["departure_gate"] = f.DepartureGate
	if !f.CreatedAt.IsZero() {
		doc["created_at"] = f.CreatedAt
	}
	if !f.UpdatedAt.IsZero() {
		doc["updated_at"] = f.UpdatedAt
	}
	return json.Marshal(doc)
}
