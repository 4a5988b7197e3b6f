package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneRepository interface {
	// CreateWithSeats persists the airplane together with its full seat map
	// in one transaction; a failed insert leaves no partial seat map behind.
	CreateWithSeats(ctx context.Context, airplane *domain.Airplane, seats []domain.Seat) error
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	List(ctx context.Context) ([]domain.Airplane, error)
	Seats(ctx context.Context, airplaneID int64) ([]domain.Seat, error)
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func (r *PGAirplaneRepository) CreateWithSeats(ctx context.Context, airplane *domain.Airplane, seats []domain.Seat) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO airplanes (name, airline_id, airplane_type_id)
		VALUES ($1, $2, $3)
		RETURNING id`, airplane.Name, airplane.AirlineID, airplane.AirplaneTypeID).
		Scan(&airplane.ID); err != nil {
		return mapError(err)
	}

	rows := make([][]interface{}, 0, len(seats))
	for _, s := range seats {
		rows = append(rows, []interface{}{airplane.ID, s.Row, s.Number})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"seats"},
		[]string{"airplane_id", "row", "number"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return mapError(err)
	}

	return tx.Commit(ctx)
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, airline_id, airplane_type_id FROM airplanes WHERE id=$1`, id)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.Name, &a.AirlineID, &a.AirplaneTypeID); err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PGAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, airline_id, airplane_type_id FROM airplanes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.AirlineID, &a.AirplaneTypeID); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) Seats(ctx context.Context, airplaneID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT id, airplane_id, "row", "number" FROM seats WHERE airplane_id=$1 ORDER BY "row", "number"`, airplaneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.AirplaneID, &s.Row, &s.Number); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// Delete removes the airplane; its seats go with it via ON DELETE CASCADE.
func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM airplanes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
