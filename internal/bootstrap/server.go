package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/airplanes"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Airplanes airplanes.AirplaneUseCase
	Flights   flights.FlightUseCase
	Booking   booking.BookingUseCase
	Catalog   repository.CatalogRepository
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, services Services) error {
	router := NewRouter(services)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter mounts every handler group under /api/v1.
func NewRouter(services Services) *gin.Engine {
	router := gin.Default()

	v1 := router.Group("/api/v1")

	api.NewAirplaneHandler(services.Airplanes).Register(v1.Group("/airplanes"))
	api.NewFlightHandler(services.Flights).Register(v1.Group("/flights"))

	orderHandler := api.NewOrderHandler(services.Booking)
	orderHandler.Register(v1.Group("/orders"))
	orderHandler.RegisterTickets(v1.Group("/tickets"))

	api.NewCatalogHandler(services.Catalog).Register(v1.Group("/catalog"))

	return router
}
