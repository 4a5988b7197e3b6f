package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository covers the reference data the booking core builds on:
// countries, cities, airports, airlines, airplane types, routes and crews.
type CatalogRepository interface {
	CreateCountry(ctx context.Context, country *domain.Country) error
	ListCountries(ctx context.Context) ([]domain.Country, error)

	CreateCity(ctx context.Context, city *domain.City) error
	ListCities(ctx context.Context) ([]domain.City, error)

	CreateAirport(ctx context.Context, airport *domain.Airport) error
	ListAirports(ctx context.Context) ([]domain.Airport, error)

	CreateAirline(ctx context.Context, airline *domain.Airline) error
	ListAirlines(ctx context.Context) ([]domain.Airline, error)

	CreateAirlineRating(ctx context.Context, rating *domain.AirlineRating) error
	ListAirlineRatings(ctx context.Context, airlineID int64) ([]domain.AirlineRating, error)
	// AirlineRatingAverages aggregates the mean score per category over the
	// airline's ratings; a category nobody has scored comes back nil.
	AirlineRatingAverages(ctx context.Context, airlineID int64) (domain.RatingAverages, error)
	// FleetSize counts the airline's airplanes.
	FleetSize(ctx context.Context, airlineID int64) (int, error)

	CreateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)

	CreateRoute(ctx context.Context, route *domain.Route) error
	ListRoutes(ctx context.Context) ([]domain.Route, error)

	CreateCrew(ctx context.Context, crew *domain.Crew) error
	ListCrews(ctx context.Context) ([]domain.Crew, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) CreateCountry(ctx context.Context, country *domain.Country) error {
	return mapError(r.db.QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, country.Name).Scan(&country.ID))
}

func (r *PGCatalogRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *PGCatalogRepository) CreateCity(ctx context.Context, city *domain.City) error {
	return mapError(r.db.QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`, city.Name, city.CountryID).Scan(&city.ID))
}

func (r *PGCatalogRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, country_id FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *PGCatalogRepository) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	return mapError(r.db.QueryRow(ctx, `INSERT INTO airports (name, city_id, iata_code, timezone) VALUES ($1, $2, $3, $4) RETURNING id`,
		airport.Name, airport.CityID, airport.IATACode, airport.Timezone).Scan(&airport.ID))
}

func (r *PGCatalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, city_id, iata_code, timezone FROM airports ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.CityID, &a.IATACode, &a.Timezone); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGCatalogRepository) CreateAirline(ctx context.Context, airline *domain.Airline) error {
	return mapError(r.db.QueryRow(ctx, `INSERT INTO airlines (name, headquarters, iata_code, web_site) VALUES ($1, $2, $3, $4) RETURNING id`,
		airline.Name, airline.Headquarters, airline.IATACode, airline.WebSite).Scan(&airline.ID))
}

func (r *PGCatalogRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, headquarters, iata_code, web_site FROM airlines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.Headquarters, &a.IATACode, &a.WebSite); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGCatalogRepository) CreateAirlineRating(ctx context.Context, rating *domain.AirlineRating) error {
	if err := rating.Validate(); err != nil {
		return err
	}
	return mapError(r.db.QueryRow(ctx, `INSERT INTO airline_ratings
		(airline_id, boarding_deplaining_rating, crew_rating, services_rating, entertainment_rating, wi_fi_rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		rating.AirlineID, rating.BoardingDeplaining, rating.Crew, rating.Services, rating.Entertainment, rating.WiFi).
		Scan(&rating.ID, &rating.CreatedAt))
}

func (r *PGCatalogRepository) ListAirlineRatings(ctx context.Context, airlineID int64) ([]domain.AirlineRating, error) {
	rows, err := r.db.Query(ctx, `SELECT id, airline_id, boarding_deplaining_rating, crew_rating, services_rating, entertainment_rating, wi_fi_rating, created_at
		FROM airline_ratings WHERE airline_id=$1 ORDER BY created_at DESC`, airlineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.AirlineRating, 0)
	for rows.Next() {
		var rt domain.AirlineRating
		if err := rows.Scan(&rt.ID, &rt.AirlineID, &rt.BoardingDeplaining, &rt.Crew, &rt.Services, &rt.Entertainment, &rt.WiFi, &rt.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

func (r *PGCatalogRepository) AirlineRatingAverages(ctx context.Context, airlineID int64) (domain.RatingAverages, error) {
	var avg domain.RatingAverages
	err := r.db.QueryRow(ctx, `SELECT
			AVG(boarding_deplaining_rating),
			AVG(crew_rating),
			AVG(services_rating),
			AVG(entertainment_rating),
			AVG(wi_fi_rating)
		FROM airline_ratings WHERE airline_id=$1`, airlineID).
		Scan(&avg.BoardingDeplaining, &avg.Crew, &avg.Services, &avg.Entertainment, &avg.WiFi)
	if err != nil {
		return domain.RatingAverages{}, err
	}
	return avg, nil
}

func (r *PGCatalogRepository) FleetSize(ctx context.Context, airlineID int64) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM airplanes WHERE airline_id=$1`, airlineID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGCatalogRepository) CreateAirplaneType(ctx context.Context, airplaneType *domain.AirplaneType) error {
	return mapError(r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, airplaneType.Name).Scan(&airplaneType.ID))
}

func (r *PGCatalogRepository) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGCatalogRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	return mapError(r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance_km) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.DistanceKM).Scan(&route.ID))
}

func (r *PGCatalogRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT id, source_id, destination_id, distance_km FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.DistanceKM); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGCatalogRepository) CreateCrew(ctx context.Context, crew *domain.Crew) error {
	return mapError(r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`, crew.FirstName, crew.LastName).Scan(&crew.ID))
}

func (r *PGCatalogRepository) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY last_name, first_name`)
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

var _ CatalogRepository = (*PGCatalogRepository)(nil)
