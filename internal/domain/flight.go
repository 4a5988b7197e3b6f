package domain

import "time"

type FlightStatus string

const (
	FlightStatusNormal    FlightStatus = "normal"
	FlightStatusCanceled  FlightStatus = "canceled"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusAhead     FlightStatus = "ahead"
	FlightStatusEmergency FlightStatus = "emergency"
)

type Flight struct {
	ID                    int64        `json:"id"`
	RouteID               int64        `json:"route_id"`
	AirplaneID            int64        `json:"airplane_id"`
	DepartureTime         time.Time    `json:"departure_time"`
	EstimatedArrivalTime  time.Time    `json:"estimated_arrival_time"`
	ActualArrivalTime     *time.Time   `json:"actual_arrival_time,omitempty"`
	Status                FlightStatus `json:"status"`
	EmergentDestinationID *int64       `json:"emergent_destination_id,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// ValidateStatus rejects statuses outside the five known values and
// enforces the field requirements of the non-normal ones: delayed and ahead
// must carry an actual arrival time, emergency must carry an emergent
// destination.
func (f *Flight) ValidateStatus() error {
	switch f.Status {
	case FlightStatusNormal, FlightStatusCanceled:
	case FlightStatusDelayed, FlightStatusAhead:
		if f.ActualArrivalTime == nil {
			return ErrActualArrivalRequired
		}
	case FlightStatusEmergency:
		if f.EmergentDestinationID == nil {
			return ErrEmergentDestinationRequired
		}
	default:
		return ErrInvalidFlightStatus
	}
	return nil
}
