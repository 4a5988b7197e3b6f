package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock implementation of repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateCountry(ctx context.Context, country *domain.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockCatalogRepository) CreateCity(ctx context.Context, city *domain.City) error {
	args := m.Called(ctx, city)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockCatalogRepository) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCatalogRepository) CreateAirline(ctx context.Context, airline *domain.Airline) error {
	args := m.Called(ctx, airline)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockCatalogRepository) CreateAirlineRating(ctx context.Context, rating *domain.AirlineRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListAirlineRatings(ctx context.Context, airlineID int64) ([]domain.AirlineRating, error) {
	args := m.Called(ctx, airlineID)
	return args.Get(0).([]domain.AirlineRating), args.Error(1)
}

func (m *MockCatalogRepository) AirlineRatingAverages(ctx context.Context, airlineID int64) (domain.RatingAverages, error) {
	args := m.Called(ctx, airlineID)
	return args.Get(0).(domain.RatingAverages), args.Error(1)
}

func (m *MockCatalogRepository) FleetSize(ctx context.Context, airlineID int64) (int, error) {
	args := m.Called(ctx, airlineID)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogRepository) CreateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error {
	args := m.Called(ctx, airplaneType)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AirplaneType), args.Error(1)
}

func (m *MockCatalogRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockCatalogRepository) CreateCrew(ctx context.Context, crew *domain.Crew) error {
	args := m.Called(ctx, crew)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Crew), args.Error(1)
}

func TestCatalogHandler_createAirlineRating(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	handler := NewCatalogHandler(mockRepo)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	body, _ := json.Marshal(map[string]int{"crew_rating": 5, "services_rating": 4})
	c.Request = httptest.NewRequest("POST", "/airlines/3/ratings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockRepo.On("CreateAirlineRating", c.Request.Context(), mock.MatchedBy(func(r *domain.AirlineRating) bool {
		return r.AirlineID == 3 && r.Crew != nil && *r.Crew == 5
	})).Return(nil)

	handler.createAirlineRating(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestCatalogHandler_createAirlineRating_ScoreOutOfRange(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	handler := NewCatalogHandler(mockRepo)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	body, _ := json.Marshal(map[string]int{"crew_rating": 6})
	c.Request = httptest.NewRequest("POST", "/airlines/3/ratings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockRepo.On("CreateAirlineRating", c.Request.Context(), mock.Anything).Return(domain.ErrInvalidRating)

	handler.createAirlineRating(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_airlineRatingSummary(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	handler := NewCatalogHandler(mockRepo)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("GET", "/airlines/3/rating", nil)

	crew := 4.0
	wifi := 3.0
	mockRepo.On("AirlineRatingAverages", c.Request.Context(), int64(3)).
		Return(domain.RatingAverages{Crew: &crew, WiFi: &wifi}, nil)
	mockRepo.On("FleetSize", c.Request.Context(), int64(3)).Return(12, nil)

	handler.airlineRatingSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response airlineRatingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 12, response.FleetSize)
	// (4*0.2 + 3*0.05) / 0.25 = 3.8
	assert.Equal(t, 3.8, response.OverallRating)
	assert.Equal(t, 4.0, *response.Crew)
	assert.Nil(t, response.Entertainment)

	mockRepo.AssertExpectations(t)
}

func TestCatalogHandler_airlineRatingSummary_InvalidID(t *testing.T) {
	mockRepo := &MockCatalogRepository{}
	handler := NewCatalogHandler(mockRepo)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/airlines/abc/rating", nil)

	handler.airlineRatingSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
