package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/kafka"
)

// Sender is a stand-in for a real mail integration; it only logs what
// would be sent.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	if event.SeatRow != nil && event.SeatNumber != nil {
		fmt.Printf("notify user %d: %s for order %s, flight %d, seat %d-%d\n",
			event.UserID, event.Type, event.OrderReference, event.FlightID, *event.SeatRow, *event.SeatNumber)
		return nil
	}
	fmt.Printf("notify user %d: %s for order %s, flight %d\n",
		event.UserID, event.Type, event.OrderReference, event.FlightID)
	return nil
}
