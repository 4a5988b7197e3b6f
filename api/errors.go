package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
)

// statusOf maps the domain error kinds onto HTTP status codes. Unrecognized
// errors are treated as server faults.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrRowNotFound),
		errors.Is(err, domain.ErrSeatNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatAlreadyBooked),
		errors.Is(err, domain.ErrAlreadyAllocated),
		errors.Is(err, domain.ErrInsufficientCapacity),
		errors.Is(err, domain.ErrNoSeatsAvailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidLayout),
		errors.Is(err, domain.ErrNoTicketsRequested),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidFlightStatus),
		errors.Is(err, domain.ErrActualArrivalRequired),
		errors.Is(err, domain.ErrEmergentDestinationRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
