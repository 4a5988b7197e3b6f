package domain

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

type Airport struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	CityID   int64   `json:"city_id"`
	IATACode *string `json:"iata_code,omitempty"`
	Timezone string  `json:"timezone"`
}

type Airline struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Headquarters *string `json:"headquarters,omitempty"`
	IATACode     *string `json:"iata_code,omitempty"`
	WebSite      *string `json:"web_site,omitempty"`
}

type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Route struct {
	ID            int64 `json:"id"`
	SourceID      int64 `json:"source_id"`
	DestinationID int64 `json:"destination_id"`
	// DistanceKM is a plain stored value, filled in by whoever creates the
	// route.
	DistanceKM *int `json:"distance_km,omitempty"`
}

type Crew struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
