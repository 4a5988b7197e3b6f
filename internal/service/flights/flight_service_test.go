package flights

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	args := m.Called(ctx, flight, crewIDs)
	if args.Error(0) == nil {
		flight.ID = 1
	}
	return args.Error(0)
}

func (m *MockFlightRepository) UpdateStatus(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Crews(ctx context.Context, flightID int64) ([]domain.Crew, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.Crew), args.Error(1)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) CreateWithSeats(ctx context.Context, airplane *domain.Airplane, seats []domain.Seat) error {
	args := m.Called(ctx, airplane, seats)
	return args.Error(0)
}

func (m *MockAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Seats(ctx context.Context, airplaneID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, airplaneID)
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockAirplaneRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithTickets(ctx context.Context, order *domain.Order, tickets []domain.Ticket) error {
	args := m.Called(ctx, order, tickets)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockOrderRepository) TakenSeats(ctx context.Context, flightID int64) ([]domain.SeatRef, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.SeatRef), args.Error(1)
}

func (m *MockOrderRepository) CountAllocated(ctx context.Context, flightID int64) (int, error) {
	args := m.Called(ctx, flightID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) AssignSeat(ctx context.Context, ticketID int64, row, number int) (*domain.Ticket, error) {
	args := m.Called(ctx, ticketID, row, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockOrderRepository) PendingTicketsForFlightsDepartingBefore(ctx context.Context, deadline time.Time) ([]domain.Ticket, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, mockCache)
	ctx := context.Background()

	flights := []domain.Flight{{ID: 1}, {ID: 2}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, mockCache)
	ctx := context.Background()

	flights := []domain.Flight{{ID: 1}}
	mockCache.On("GetFlights", ctx).Return(flights, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertNotCalled(t, "List")
}

func TestFlightService_Detail(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockAirplanes := &MockAirplaneRepository{}
	mockOrders := &MockOrderRepository{}

	service := NewFlightService(mockRepo, mockAirplanes, mockOrders, nil)
	ctx := context.Background()

	flight := &domain.Flight{ID: 4, AirplaneID: 2}
	seats, err := domain.BuildStandardLayout(2, 6)
	assert.NoError(t, err)

	mockRepo.On("GetByID", ctx, int64(4)).Return(flight, nil)
	mockAirplanes.On("Seats", ctx, int64(2)).Return(seats, nil)
	mockOrders.On("TakenSeats", ctx, int64(4)).Return([]domain.SeatRef{{Row: 1, Number: 1}, {Row: 2, Number: 3}}, nil)
	mockRepo.On("Crews", ctx, int64(4)).Return([]domain.Crew{
		{ID: 1, FirstName: "Anna", LastName: "Ivanova"},
		{ID: 2, FirstName: "Pavel", LastName: "Petrov"},
	}, nil)

	detail, err := service.Detail(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, 6, detail.TotalSeats)
	assert.Equal(t, 4, detail.AvailableSeats)
	assert.Len(t, detail.TakenSeats, 2)
	assert.Len(t, detail.Crews, 2)
	assert.Equal(t, "Ivanova", detail.Crews[0].LastName)
}

func TestFlightService_Create_StatusRules(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name        string
		input       CreateFlightInput
		expectedErr error
	}{
		{
			name: "Normal flight without extras",
			input: CreateFlightInput{
				RouteID:              1,
				AirplaneID:           2,
				DepartureTime:        now,
				EstimatedArrivalTime: now.Add(2 * time.Hour),
			},
		},
		{
			name: "Delayed without actual arrival",
			input: CreateFlightInput{
				RouteID:              1,
				AirplaneID:           2,
				DepartureTime:        now,
				EstimatedArrivalTime: now.Add(2 * time.Hour),
				Status:               "delayed",
			},
			expectedErr: domain.ErrActualArrivalRequired,
		},
		{
			name: "Delayed with actual arrival",
			input: CreateFlightInput{
				RouteID:              1,
				AirplaneID:           2,
				DepartureTime:        now,
				EstimatedArrivalTime: now.Add(2 * time.Hour),
				ActualArrivalTime:    timePtr(now.Add(3 * time.Hour)),
				Status:               "delayed",
			},
		},
		{
			name: "Emergency without destination",
			input: CreateFlightInput{
				RouteID:              1,
				AirplaneID:           2,
				DepartureTime:        now,
				EstimatedArrivalTime: now.Add(2 * time.Hour),
				Status:               "emergency",
			},
			expectedErr: domain.ErrEmergentDestinationRequired,
		},
		{
			name: "Emergency with destination",
			input: CreateFlightInput{
				RouteID:               1,
				AirplaneID:            2,
				DepartureTime:         now,
				EstimatedArrivalTime:  now.Add(2 * time.Hour),
				Status:                "emergency",
				EmergentDestinationID: int64Ptr(3),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockFlightRepository{}
			mockCache := &MockCache{}

			service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, mockCache)
			ctx := context.Background()

			mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight"), mock.Anything).Return(nil)
			mockCache.On("InvalidateFlights", ctx).Return(nil)

			flight, err := service.Create(ctx, tc.input)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, flight)
				mockRepo.AssertNotCalled(t, "Create")
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, flight)
			mockRepo.AssertExpectations(t)
			mockCache.AssertExpectations(t)
		})
	}
}

func TestFlightService_Create_DefaultsToNormal(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, nil)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight"), mock.Anything).Return(nil).Once()

	flight, err := service.Create(ctx, CreateFlightInput{
		RouteID:              1,
		AirplaneID:           2,
		DepartureTime:        time.Now(),
		EstimatedArrivalTime: time.Now().Add(time.Hour),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.FlightStatusNormal, flight.Status)
}

func TestFlightService_Create_AssignsCrews(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, nil)
	ctx := context.Background()

	crewIDs := []int64{3, 7}
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight"), crewIDs).Return(nil).Once()

	flight, err := service.Create(ctx, CreateFlightInput{
		RouteID:              1,
		AirplaneID:           2,
		DepartureTime:        time.Now(),
		EstimatedArrivalTime: time.Now().Add(time.Hour),
		CrewIDs:              crewIDs,
	})

	assert.NoError(t, err)
	assert.NotNil(t, flight)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Create_UnknownStatus(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, nil)

	flight, err := service.Create(context.Background(), CreateFlightInput{
		RouteID:              1,
		AirplaneID:           2,
		DepartureTime:        time.Now(),
		EstimatedArrivalTime: time.Now().Add(time.Hour),
		Status:               "bogus",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidFlightStatus)
	assert.Nil(t, flight)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestFlightService_UpdateStatus(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, mockCache)
	ctx := context.Background()

	existing := &domain.Flight{ID: 4, Status: domain.FlightStatusNormal}
	mockRepo.On("GetByID", ctx, int64(4)).Return(existing, nil)
	mockRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	actual := time.Now().Add(time.Hour)
	flight, err := service.UpdateStatus(ctx, UpdateStatusInput{
		FlightID:          4,
		Status:            "delayed",
		ActualArrivalTime: &actual,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.FlightStatusDelayed, flight.Status)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_UpdateStatus_Invalid(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, nil)
	ctx := context.Background()

	existing := &domain.Flight{ID: 4, Status: domain.FlightStatusNormal}
	mockRepo.On("GetByID", ctx, int64(4)).Return(existing, nil)

	flight, err := service.UpdateStatus(ctx, UpdateStatusInput{FlightID: 4, Status: "delayed"})

	assert.ErrorIs(t, err, domain.ErrActualArrivalRequired)
	assert.Nil(t, flight)
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestFlightService_Delete_InvalidatesCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, &MockAirplaneRepository{}, &MockOrderRepository{}, mockCache)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(4)).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	err := service.Delete(ctx, 4)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
