package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the reference data endpoints. They are plain CRUD
// over the repository, so no service layer sits in between.
type CatalogHandler struct {
	repo repository.CatalogRepository
}

func NewCatalogHandler(repo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.POST("/countries", h.createCountry)
	router.GET("/countries", h.listCountries)
	router.POST("/cities", h.createCity)
	router.GET("/cities", h.listCities)
	router.POST("/airports", h.createAirport)
	router.GET("/airports", h.listAirports)
	router.POST("/airlines", h.createAirline)
	router.GET("/airlines", h.listAirlines)
	router.POST("/airlines/:id/ratings", h.createAirlineRating)
	router.GET("/airlines/:id/ratings", h.listAirlineRatings)
	router.GET("/airlines/:id/rating", h.airlineRatingSummary)
	router.POST("/airplane-types", h.createAirplaneType)
	router.GET("/airplane-types", h.listAirplaneTypes)
	router.POST("/routes", h.createRoute)
	router.GET("/routes", h.listRoutes)
	router.POST("/crews", h.createCrew)
	router.GET("/crews", h.listCrews)
}

func (h *CatalogHandler) createCountry(c *gin.Context) {
	var country domain.Country
	if err := c.ShouldBindJSON(&country); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateCountry(c.Request.Context(), &country); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, country)
}

func (h *CatalogHandler) listCountries(c *gin.Context) {
	countries, err := h.repo.ListCountries(c.Request.Context())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *CatalogHandler) createCity(c *gin.Context) {
	var city domain.City
	if err := c.ShouldBindJSON(&city); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateCity(c.Request.Context(), &city); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, city)
}

func (h *CatalogHandler) listCities(c *gin.Context) {
	cities, err := h.repo.ListCities(c.Request.Context())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var airport domain.Airport
	if err := c.ShouldBindJSON(&airport); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateAirport(c.Request.Context(), &airport); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, airport)
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	airports, err := h.repo.ListAirports(c.Request.Context())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *CatalogHandler) createAirline(c *gin.Context) {
	var airline domain.Airline
	if err := c.ShouldBindJSON(&airline); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateAirline(c.Request.Context(), &airline); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, airline)
}

func (h *CatalogHandler) listAirlines(c *gin.Context) {
	airlines, err := h.repo.ListAirlines(c.Request.Context())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *CatalogHandler) createAirlineRating(c *gin.Context) {
	airlineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var rating domain.AirlineRating
	if err := c.ShouldBindJSON(&rating); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rating.AirlineID = airlineID

	if err := h.repo.CreateAirlineRating(c.Request.Context(), &rating); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *CatalogHandler) listAirlineRatings(c *gin.Context) {
	airlineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ratings, err := h.repo.ListAirlineRatings(c.Request.Context(), airlineID)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ratings)
}

type airlineRatingResponse struct {
	FleetSize int `json:"fleet_size"`
	domain.AirlineRatingSummary
}

// airlineRatingSummary reports the airline's weighted overall score,
// per-category averages and fleet size.
func (h *CatalogHandler) airlineRatingSummary(c *gin.Context) {
	airlineID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	avg, err := h.repo.AirlineRatingAverages(c.Request.Context(), airlineID)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	fleetSize, err := h.repo.FleetSize(c.Request.Context(), airlineID)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, airlineRatingResponse{
		FleetSize:            fleetSize,
		AirlineRatingSummary: domain.SummarizeRatings(avg),
	})
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var airplaneType domain.AirplaneType
	if err := c.ShouldBindJSON(&airplaneType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateAirplaneType(c.Request.Context(), &airplaneType); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, airplaneType)
}

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	types, err := h.repo.ListAirplaneTypes(c.Request.Context())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *CatalogHandler) createRoute(c *gin.Context) {
	var route domain.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateRoute(c.Request.Context(), &route); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *CatalogHandler) listRoutes(c *gin.Context) {
	routes, err := h.repo.ListRoutes(c.Request.Context())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var crew domain.Crew
	if err := c.ShouldBindJSON(&crew); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.CreateCrew(c.Request.Context(), &crew); err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, crew)
}

func (h *CatalogHandler) listCrews(c *gin.Context) {
	crews, err := h.repo.ListCrews(c.Request.Context())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, crews)
}
