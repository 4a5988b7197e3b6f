package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Detail(ctx context.Context, id int64) (*FlightDetail, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// FlightDetail is the flight together with its seat inventory and assigned
// crew: which seats are taken and how many are still free.
type FlightDetail struct {
	Flight         domain.Flight    `json:"flight"`
	TotalSeats     int              `json:"total_seats"`
	AvailableSeats int              `json:"available_seats"`
	TakenSeats     []domain.SeatRef `json:"taken_seats"`
	Crews          []domain.Crew    `json:"crews"`
}

type CreateFlightInput struct {
	RouteID               int64      `json:"route_id"`
	AirplaneID            int64      `json:"airplane_id"`
	DepartureTime         time.Time  `json:"departure_time"`
	EstimatedArrivalTime  time.Time  `json:"estimated_arrival_time"`
	ActualArrivalTime     *time.Time `json:"actual_arrival_time,omitempty"`
	Status                string     `json:"status,omitempty"`
	EmergentDestinationID *int64     `json:"emergent_destination_id,omitempty"`
	CrewIDs               []int64    `json:"crew_ids,omitempty"`
}

type UpdateStatusInput struct {
	FlightID              int64      `json:"-"`
	Status                string     `json:"status"`
	ActualArrivalTime     *time.Time `json:"actual_arrival_time,omitempty"`
	EmergentDestinationID *int64     `json:"emergent_destination_id,omitempty"`
}

type FlightService struct {
	repo      repository.FlightRepository
	airplanes repository.AirplaneRepository
	orders    repository.OrderRepository
	cache     Cache
}

func NewFlightService(repo repository.FlightRepository, airplanes repository.AirplaneRepository, orders repository.OrderRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, airplanes: airplanes, orders: orders, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Detail(ctx context.Context, id int64) (*FlightDetail, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.airplanes.Seats(ctx, flight.AirplaneID)
	if err != nil {
		return nil, err
	}

	taken, err := s.orders.TakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	crews, err := s.repo.Crews(ctx, id)
	if err != nil {
		return nil, err
	}

	total := domain.NewSeatMap(seats).TotalSeats()
	available := total - len(taken)
	if available < 0 {
		available = 0
	}

	return &FlightDetail{
		Flight:         *flight,
		TotalSeats:     total,
		AvailableSeats: available,
		TakenSeats:     taken,
		Crews:          crews,
	}, nil
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	flight := &domain.Flight{
		RouteID:               input.RouteID,
		AirplaneID:            input.AirplaneID,
		DepartureTime:         input.DepartureTime,
		EstimatedArrivalTime:  input.EstimatedArrivalTime,
		ActualArrivalTime:     input.ActualArrivalTime,
		Status:                domain.FlightStatus(input.Status),
		EmergentDestinationID: input.EmergentDestinationID,
	}
	if flight.Status == "" {
		flight.Status = domain.FlightStatusNormal
	}
	if err := flight.ValidateStatus(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, flight, input.CrewIDs); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	flight.Status = domain.FlightStatus(input.Status)
	if input.ActualArrivalTime != nil {
		flight.ActualArrivalTime = input.ActualArrivalTime
	}
	if input.EmergentDestinationID != nil {
		flight.EmergentDestinationID = input.EmergentDestinationID
	}
	if err := flight.ValidateStatus(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
