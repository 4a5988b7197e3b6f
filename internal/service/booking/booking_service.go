package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, orderID, userID int64) error
	AvailableSeats(ctx context.Context, flightID int64) (int, error)
	AllocateSeat(ctx context.Context, ticketID int64) (*domain.Ticket, error)
	AllocatePendingForDeparting(ctx context.Context, window time.Duration) ([]domain.Ticket, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID int64, row, number int, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, row, number int) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	airplanes          repository.AirplaneRepository
	cache              Cache
	producer           Producer
	orderTopic         string
	notificationsTopic string
	seatLockTTL        time.Duration
}

type PlaceOrderInput struct {
	UserID  int64                  `json:"user_id"`
	Tickets []domain.TicketRequest `json:"tickets"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	airplanes repository.AirplaneRepository,
	cache Cache,
	producer Producer,
	orderTopic string,
	seatLockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		orders:      orders,
		flights:     flights,
		airplanes:   airplanes,
		cache:       cache,
		producer:    producer,
		orderTopic:  orderTopic,
		seatLockTTL: seatLockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// AvailableSeats reports the capacity left on a flight: the seat count of
// the airplane's whole seat map minus the allocated tickets, floored at 0.
func (s *BookingService) AvailableSeats(ctx context.Context, flightID int64) (int, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return 0, err
	}

	seats, err := s.airplanes.Seats(ctx, flight.AirplaneID)
	if err != nil {
		return 0, err
	}

	allocated, err := s.orders.CountAllocated(ctx, flightID)
	if err != nil {
		return 0, err
	}

	available := domain.NewSeatMap(seats).TotalSeats() - allocated
	if available < 0 {
		available = 0
	}
	return available, nil
}

// PlaceOrder creates an order with all requested tickets as one atomic
// unit. The whole batch is rejected when capacity is short or any seat
// fails validation; no partial order is left behind.
func (s *BookingService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if len(input.Tickets) == 0 {
		return nil, domain.ErrNoTicketsRequested
	}

	// The batch references a single flight.
	flightID := input.Tickets[0].FlightID
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	available, err := s.AvailableSeats(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if available < len(input.Tickets) {
		return nil, domain.ErrInsufficientCapacity
	}

	seats, err := s.airplanes.Seats(ctx, flight.AirplaneID)
	if err != nil {
		return nil, err
	}
	seatMap := domain.NewSeatMap(seats)

	taken, err := s.takenSet(ctx, flightID)
	if err != nil {
		return nil, err
	}

	tickets := make([]domain.Ticket, 0, len(input.Tickets))
	var locked []domain.SeatRef
	defer func() {
		for _, ref := range locked {
			_ = s.cache.ReleaseSeatLock(ctx, flightID, ref.Row, ref.Number)
		}
	}()

	for _, req := range input.Tickets {
		if err := validateSeat(seatMap, taken, flightID, req.SeatRow, req.SeatNumber); err != nil {
			return nil, err
		}

		ticket := domain.Ticket{FlightID: flightID, Status: domain.TicketStatusPending}
		if req.SeatRow != nil {
			ref := domain.SeatRef{Row: *req.SeatRow, Number: *req.SeatNumber}
			if s.cache != nil {
				ok, err := s.cache.AcquireSeatLock(ctx, flightID, ref.Row, ref.Number, s.seatLockTTL)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, domain.SeatRowError(domain.ErrSeatAlreadyBooked, flightID, ref.Row, req.SeatNumber)
				}
				locked = append(locked, ref)
			}
			// Reserve within the batch too, so two requests for the same
			// seat collide here instead of at commit.
			taken[ref] = true

			ticket.SeatRow = req.SeatRow
			ticket.SeatNumber = req.SeatNumber
			ticket.Status = domain.TicketStatusAllocated
		}
		tickets = append(tickets, ticket)
	}

	order := &domain.Order{Reference: uuid.NewString(), UserID: input.UserID}
	if err := s.orders.CreateWithTickets(ctx, order, tickets); err != nil {
		return nil, err
	}

	for _, t := range order.Tickets {
		s.publish(ctx, "order_created", order, &t)
	}
	return order, nil
}

func (s *BookingService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *BookingService) DeleteOrder(ctx context.Context, orderID, userID int64) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return domain.ErrNotFound
	}
	return s.orders.Delete(ctx, orderID)
}

// AllocateSeat resolves a pending ticket to the first free seat: rows in
// ascending order, seat numbers 1..the row's own seat count. The write is
// conditional, so a seat lost to a concurrent allocation is skipped and
// the scan continues.
func (s *BookingService) AllocateSeat(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.orders.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusPending {
		return nil, domain.ErrAlreadyAllocated
	}

	flight, err := s.flights.GetByID(ctx, ticket.FlightID)
	if err != nil {
		return nil, err
	}

	seats, err := s.airplanes.Seats(ctx, flight.AirplaneID)
	if err != nil {
		return nil, err
	}
	seatMap := domain.NewSeatMap(seats)

	taken, err := s.takenSet(ctx, ticket.FlightID)
	if err != nil {
		return nil, err
	}

	for _, row := range seatMap.Rows() {
		for number := 1; number <= seatMap.SeatsInRow(row); number++ {
			if taken[domain.SeatRef{Row: row, Number: number}] {
				continue
			}

			allocated, err := s.orders.AssignSeat(ctx, ticketID, row, number)
			if err == nil {
				order, err := s.orders.GetByID(ctx, allocated.OrderID)
				if err == nil {
					s.publish(ctx, "ticket_allocated", order, allocated)
				}
				return allocated, nil
			}
			if errors.Is(err, domain.ErrSeatAlreadyBooked) {
				// Lost the race for this seat; keep scanning.
				taken[domain.SeatRef{Row: row, Number: number}] = true
				continue
			}
			return nil, err
		}
	}

	return nil, domain.ErrNoSeatsAvailable
}

// AllocatePendingForDeparting auto-completes check-in for pending tickets
// on flights departing within the window. Fully booked flights are skipped.
func (s *BookingService) AllocatePendingForDeparting(ctx context.Context, window time.Duration) ([]domain.Ticket, error) {
	deadline := time.Now().Add(window)
	pending, err := s.orders.PendingTicketsForFlightsDepartingBefore(ctx, deadline)
	if err != nil {
		return nil, err
	}

	allocated := make([]domain.Ticket, 0, len(pending))
	for _, t := range pending {
		result, err := s.AllocateSeat(ctx, t.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNoSeatsAvailable) || errors.Is(err, domain.ErrAlreadyAllocated) {
				continue
			}
			log.Printf("allocate ticket %d: %v", t.ID, err)
			continue
		}
		allocated = append(allocated, *result)
	}
	return allocated, nil
}

// validateSeat gate-keeps one requested seat against the seat map and the
// seats already held on the flight. A nil row means a pending ticket and
// passes trivially.
func validateSeat(seatMap domain.SeatMap, taken map[domain.SeatRef]bool, flightID int64, row, number *int) error {
	if row == nil {
		return nil
	}
	if !seatMap.HasRow(*row) {
		return domain.SeatRowError(domain.ErrRowNotFound, flightID, *row, nil)
	}
	// A half-specified seat cannot be booked: the row exists, but there is
	// no concrete seat to allocate.
	if number == nil {
		return domain.SeatRowError(domain.ErrSeatNotFound, flightID, *row, nil)
	}
	if !seatMap.HasSeat(*row, *number) {
		return domain.SeatRowError(domain.ErrSeatNotFound, flightID, *row, number)
	}
	if taken[domain.SeatRef{Row: *row, Number: *number}] {
		return domain.SeatRowError(domain.ErrSeatAlreadyBooked, flightID, *row, number)
	}
	return nil
}

func (s *BookingService) takenSet(ctx context.Context, flightID int64) (map[domain.SeatRef]bool, error) {
	refs, err := s.orders.TakenSeats(ctx, flightID)
	if err != nil {
		return nil, err
	}
	taken := make(map[domain.SeatRef]bool, len(refs))
	for _, ref := range refs {
		taken[ref] = true
	}
	return taken, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, order *domain.Order, ticket *domain.Ticket) {
	if s.producer == nil || s.orderTopic == "" {
		return
	}
	event := kafka.TicketEvent{
		Type:           eventType,
		OrderReference: order.Reference,
		UserID:         order.UserID,
		FlightID:       ticket.FlightID,
		TicketID:       ticket.ID,
		SeatRow:        ticket.SeatRow,
		SeatNumber:     ticket.SeatNumber,
		Status:         string(ticket.Status),
	}
	if err := s.producer.Publish(ctx, s.orderTopic, order.Reference, event); err != nil {
		log.Printf("publish %s event for order %s: %v", eventType, order.Reference, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, order.Reference, event); err != nil {
			log.Printf("publish %s notification for order %s: %v", eventType, order.Reference, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
