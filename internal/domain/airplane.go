package domain

// Airplane owns its seats; the seat records are created once, together
// with the airplane, and form its seat map.
type Airplane struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	AirlineID      int64  `json:"airline_id"`
	AirplaneTypeID int64  `json:"airplane_type_id"`
}
