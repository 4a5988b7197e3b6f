package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	// CreateWithTickets persists the order and every ticket in one
	// transaction; any failure rolls the whole batch back.
	CreateWithTickets(ctx context.Context, order *domain.Order, tickets []domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	Delete(ctx context.Context, id int64) error

	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
	// TakenSeats lists the seats held by allocated tickets on the flight.
	TakenSeats(ctx context.Context, flightID int64) ([]domain.SeatRef, error)
	CountAllocated(ctx context.Context, flightID int64) (int, error)
	// AssignSeat moves a pending ticket to allocated with the given seat.
	// It returns domain.ErrAlreadyAllocated when the ticket is not pending
	// and domain.ErrSeatAlreadyBooked when the unique index rejects the
	// seat, so callers can re-validate after a lost race.
	AssignSeat(ctx context.Context, ticketID int64, row, number int) (*domain.Ticket, error)
	PendingTicketsForFlightsDepartingBefore(ctx context.Context, deadline time.Time) ([]domain.Ticket, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) CreateWithTickets(ctx context.Context, order *domain.Order, tickets []domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO orders (reference, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at`, order.Reference, order.UserID).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return mapError(err)
	}

	order.Tickets = order.Tickets[:0]
	for _, t := range tickets {
		t.OrderID = order.ID
		if err := tx.QueryRow(ctx, `INSERT INTO tickets (order_id, flight_id, seat_row, seat_number, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`, t.OrderID, t.FlightID, t.SeatRow, t.SeatNumber, t.Status).
			Scan(&t.ID); err != nil {
			return mapError(err)
		}
		order.Tickets = append(order.Tickets, t)
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, user_id, created_at FROM orders WHERE id=$1`, id)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt); err != nil {
		return nil, mapError(err)
	}

	tickets, err := r.ticketsByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Tickets = tickets
	return &o, nil
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, reference, user_id, created_at FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		tickets, err := r.ticketsByOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Tickets = tickets
	}
	return orders, nil
}

func (r *PGOrderRepository) ticketsByOrder(ctx context.Context, orderID int64) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, order_id, flight_id, seat_row, seat_number, status FROM tickets WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.SeatRow, &t.SeatNumber, &t.Status); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// Delete removes the order; its tickets go with it via ON DELETE CASCADE.
func (r *PGOrderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGOrderRepository) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT id, order_id, flight_id, seat_row, seat_number, status FROM tickets WHERE id=$1`, id)
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.SeatRow, &t.SeatNumber, &t.Status); err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *PGOrderRepository) TakenSeats(ctx context.Context, flightID int64) ([]domain.SeatRef, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_row, seat_number FROM tickets WHERE flight_id=$1 AND status=$2`, flightID, domain.TicketStatusAllocated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make([]domain.SeatRef, 0)
	for rows.Next() {
		var ref domain.SeatRef
		if err := rows.Scan(&ref.Row, &ref.Number); err != nil {
			return nil, err
		}
		taken = append(taken, ref)
	}
	return taken, rows.Err()
}

func (r *PGOrderRepository) CountAllocated(ctx context.Context, flightID int64) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tickets WHERE flight_id=$1 AND status=$2`, flightID, domain.TicketStatusAllocated).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGOrderRepository) AssignSeat(ctx context.Context, ticketID int64, row, number int) (*domain.Ticket, error) {
	res := r.db.QueryRow(ctx, `UPDATE tickets SET seat_row=$1, seat_number=$2, status=$3
		WHERE id=$4 AND status=$5
		RETURNING id, order_id, flight_id, seat_row, seat_number, status`,
		row, number, domain.TicketStatusAllocated, ticketID, domain.TicketStatusPending)

	var t domain.Ticket
	if err := res.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.SeatRow, &t.SeatNumber, &t.Status); err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, domain.ErrNotFound) {
			// Either the ticket does not exist or it is no longer pending;
			// the caller distinguishes the two with GetTicket.
			return nil, domain.ErrAlreadyAllocated
		}
		return nil, mapped
	}
	return &t, nil
}

func (r *PGOrderRepository) PendingTicketsForFlightsDepartingBefore(ctx context.Context, deadline time.Time) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT t.id, t.order_id, t.flight_id, t.seat_row, t.seat_number, t.status
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		WHERE t.status=$1 AND f.departure_time <= $2 AND f.departure_time > now()
		ORDER BY f.departure_time, t.id`, domain.TicketStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.SeatRow, &t.SeatNumber, &t.Status); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
