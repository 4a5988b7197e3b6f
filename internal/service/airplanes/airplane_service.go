package airplanes

import (
	"context"
	"errors"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

var errLayoutModeRequired = errors.New("exactly one of standard or unusual layout must be supplied")

type AirplaneUseCase interface {
	Create(ctx context.Context, input CreateAirplaneInput) (*AirplaneLayout, error)
	Get(ctx context.Context, id int64) (*AirplaneLayout, error)
	List(ctx context.Context) ([]domain.Airplane, error)
	Delete(ctx context.Context, id int64) error
}

// CreateAirplaneInput carries exactly one layout mode: TotalRows+TotalSeats
// for a uniform layout, or RowSeatsDistribution for an irregular one.
type CreateAirplaneInput struct {
	Name                 string `json:"name"`
	AirlineID            int64  `json:"airline_id"`
	AirplaneTypeID       int64  `json:"airplane_type_id"`
	TotalRows            *int   `json:"total_rows,omitempty"`
	TotalSeats           *int   `json:"total_seats,omitempty"`
	RowSeatsDistribution []int  `json:"row_seats_distribution,omitempty"`
}

// AirplaneLayout is the airplane together with a summary of its seat map.
type AirplaneLayout struct {
	Airplane            domain.Airplane `json:"airplane"`
	TotalRows           int             `json:"total_rows"`
	TotalSeats          int             `json:"total_seats"`
	RowSeatCounts       map[int]int     `json:"row_seat_counts"`
	StandardSeatsPerRow *int            `json:"standard_seats_per_row,omitempty"`
	Irregular           bool            `json:"irregular"`
}

type AirplaneService struct {
	repo repository.AirplaneRepository
}

func NewAirplaneService(repo repository.AirplaneRepository) *AirplaneService {
	return &AirplaneService{repo: repo}
}

// Create validates the layout before any seat record exists, so a rejected
// layout never leaves a partial seat map behind.
func (s *AirplaneService) Create(ctx context.Context, input CreateAirplaneInput) (*AirplaneLayout, error) {
	standard := input.TotalRows != nil || input.TotalSeats != nil
	unusual := len(input.RowSeatsDistribution) > 0
	if standard == unusual {
		return nil, errLayoutModeRequired
	}

	var (
		seats []domain.Seat
		err   error
	)
	if standard {
		if input.TotalRows == nil || input.TotalSeats == nil {
			return nil, domain.ErrInvalidLayout
		}
		seats, err = domain.BuildStandardLayout(*input.TotalRows, *input.TotalSeats)
	} else {
		seats, err = domain.BuildUnusualLayout(input.RowSeatsDistribution)
	}
	if err != nil {
		return nil, err
	}

	airplane := &domain.Airplane{
		Name:           input.Name,
		AirlineID:      input.AirlineID,
		AirplaneTypeID: input.AirplaneTypeID,
	}
	if err := s.repo.CreateWithSeats(ctx, airplane, seats); err != nil {
		return nil, err
	}

	return layoutOf(*airplane, seats), nil
}

func (s *AirplaneService) Get(ctx context.Context, id int64) (*AirplaneLayout, error) {
	airplane, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seats(ctx, id)
	if err != nil {
		return nil, err
	}
	return layoutOf(*airplane, seats), nil
}

func (s *AirplaneService) List(ctx context.Context) ([]domain.Airplane, error) {
	return s.repo.List(ctx)
}

func (s *AirplaneService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func layoutOf(airplane domain.Airplane, seats []domain.Seat) *AirplaneLayout {
	m := domain.NewSeatMap(seats)
	layout := &AirplaneLayout{
		Airplane:      airplane,
		TotalRows:     m.TotalRows(),
		TotalSeats:    m.TotalSeats(),
		RowSeatCounts: m.RowSeatCounts(),
	}
	if perRow, ok := m.StandardSeatsPerRow(); ok {
		layout.StandardSeatsPerRow = &perRow
	} else {
		layout.Irregular = true
	}
	return layout
}

var _ AirplaneUseCase = (*AirplaneService)(nil)
