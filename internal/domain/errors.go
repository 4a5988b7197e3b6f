package domain

import (
	"errors"
	"fmt"
)

// Booking and layout error kinds. Handlers translate each kind into an
// HTTP response; none of them are transient, the caller is expected to
// correct the input and retry.
var (
	ErrInvalidLayout        = errors.New("invalid seat layout")
	ErrRowNotFound          = errors.New("row does not exist in the airplane")
	ErrSeatNotFound         = errors.New("seat does not exist in the row")
	ErrSeatAlreadyBooked    = errors.New("seat is already booked for this flight")
	ErrInsufficientCapacity = errors.New("not enough seats available")
	ErrNoTicketsRequested   = errors.New("order must contain at least one ticket")
	ErrNoSeatsAvailable     = errors.New("no free seats left on this flight")
	ErrAlreadyAllocated     = errors.New("seat is already allocated")
	ErrNotFound             = errors.New("not found")
	ErrInvalidRating        = errors.New("rating score must be between 1 and 5")
)

// Flight status transition errors.
var (
	ErrInvalidFlightStatus         = errors.New("unknown flight status")
	ErrActualArrivalRequired       = errors.New("actual arrival time is required for delayed or ahead status")
	ErrEmergentDestinationRequired = errors.New("emergent destination is required for emergency status")
)

// SeatRowError wraps a seat error kind with the row/seat/flight it refers
// to, so the boundary layer can report which seat failed and why.
func SeatRowError(kind error, flightID int64, row int, number *int) error {
	if number == nil {
		return fmt.Errorf("%w: row %d, flight %d", kind, row, flightID)
	}
	return fmt.Errorf("%w: row %d seat %d, flight %d", kind, row, *number, flightID)
}
