package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	// Create persists the flight and its crew assignments in one
	// transaction.
	Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
	UpdateStatus(ctx context.Context, flight *domain.Flight) error
	// Crews lists the crew members assigned to the flight.
	Crews(ctx context.Context, flightID int64) ([]domain.Crew, error)
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, route_id, airplane_id, departure_time, estimated_arrival_time, actual_arrival_time, status, emergent_destination_id, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.EstimatedArrivalTime, &f.ActualArrivalTime, &f.Status, &f.EmergentDestinationID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.EstimatedArrivalTime, &f.ActualArrivalTime, &f.Status, &f.EmergentDestinationID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, estimated_arrival_time, actual_arrival_time, status, emergent_destination_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.EstimatedArrivalTime, flight.ActualArrivalTime, flight.Status, flight.EmergentDestinationID).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return mapError(err)
	}

	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`, flight.ID, crewID); err != nil {
			return mapError(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Crews(ctx context.Context, flightID int64) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT c.id, c.first_name, c.last_name
		FROM crews c
		JOIN flight_crews fc ON fc.crew_id = c.id
		WHERE fc.flight_id=$1
		ORDER BY c.last_name, c.first_name`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

func (r *PGFlightRepository) UpdateStatus(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights SET status=$1, actual_arrival_time=$2, emergent_destination_id=$3, updated_at=now()
		WHERE id=$4
		RETURNING updated_at`,
		flight.Status, flight.ActualArrivalTime, flight.EmergentDestinationID, flight.ID)
	if err := row.Scan(&flight.UpdatedAt); err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes the flight; its tickets go with it via ON DELETE CASCADE.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
