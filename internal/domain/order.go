package domain

import "time"

type TicketStatus string

const (
	// TicketStatusPending marks a ticket bought without a seat; the seat is
	// assigned later, at check-in.
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusAllocated TicketStatus = "allocated"
)

// Ticket references exactly one flight and belongs to exactly one order.
// A pending ticket has nil seat fields; an allocated ticket holds a seat
// that no other allocated ticket on the same flight may hold.
type Ticket struct {
	ID         int64        `json:"id"`
	OrderID    int64        `json:"order_id"`
	FlightID   int64        `json:"flight_id"`
	SeatRow    *int         `json:"seat_row,omitempty"`
	SeatNumber *int         `json:"seat_number,omitempty"`
	Status     TicketStatus `json:"status"`
}

// Order owns its tickets; they are created together in one transaction and
// cascade-deleted with the order.
type Order struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets,omitempty"`
}

// TicketRequest is one requested ticket inside an order: an explicit seat,
// a row with any seat, or a fully pending placeholder.
type TicketRequest struct {
	FlightID   int64 `json:"flight_id"`
	SeatRow    *int  `json:"seat_row,omitempty"`
	SeatNumber *int  `json:"seat_number,omitempty"`
}
