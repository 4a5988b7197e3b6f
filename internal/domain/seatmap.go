package domain

import "sort"

// Seat is a single physical seat of an airplane, identified by its
// (row, number) pair within that airplane.
type Seat struct {
	ID         int64 `json:"id"`
	AirplaneID int64 `json:"airplane_id"`
	Row        int   `json:"row"`
	Number     int   `json:"number"`
}

// SeatRef identifies a seat position without tying it to a seat record.
type SeatRef struct {
	Row    int `json:"row"`
	Number int `json:"number"`
}

// BuildStandardLayout produces a uniform layout: totalRows rows, each with
// totalSeats/totalRows seats numbered from 1. totalSeats must be positive
// and evenly divisible by totalRows.
func BuildStandardLayout(totalRows, totalSeats int) ([]Seat, error) {
	if totalRows <= 0 || totalSeats <= 0 {
		return nil, ErrInvalidLayout
	}
	if totalSeats%totalRows != 0 {
		return nil, ErrInvalidLayout
	}

	perRow := totalSeats / totalRows
	seats := make([]Seat, 0, totalSeats)
	for row := 1; row <= totalRows; row++ {
		for number := 1; number <= perRow; number++ {
			seats = append(seats, Seat{Row: row, Number: number})
		}
	}
	return seats, nil
}

// BuildUnusualLayout produces an irregular layout: one row per element of
// rowSeatCounts, with that many seats numbered from 1. The sequence must be
// non-empty and strictly positive.
func BuildUnusualLayout(rowSeatCounts []int) ([]Seat, error) {
	if len(rowSeatCounts) == 0 {
		return nil, ErrInvalidLayout
	}

	total := 0
	for _, count := range rowSeatCounts {
		if count <= 0 {
			return nil, ErrInvalidLayout
		}
		total += count
	}

	seats := make([]Seat, 0, total)
	for i, count := range rowSeatCounts {
		for number := 1; number <= count; number++ {
			seats = append(seats, Seat{Row: i + 1, Number: number})
		}
	}
	return seats, nil
}

// SeatMap answers layout queries over the seats of one airplane.
type SeatMap struct {
	rows  map[int]int
	order []int
}

func NewSeatMap(seats []Seat) SeatMap {
	rows := make(map[int]int)
	for _, s := range seats {
		rows[s.Row]++
	}
	order := make([]int, 0, len(rows))
	for row := range rows {
		order = append(order, row)
	}
	sort.Ints(order)
	return SeatMap{rows: rows, order: order}
}

func (m SeatMap) TotalRows() int {
	return len(m.rows)
}

// TotalSeats sums the seat count of every row, so irregular layouts are
// counted correctly.
func (m SeatMap) TotalSeats() int {
	total := 0
	for _, count := range m.rows {
		total += count
	}
	return total
}

// Rows returns the distinct row indices in ascending order.
func (m SeatMap) Rows() []int {
	return m.order
}

// RowSeatCounts maps each row index to the number of seats in that row.
func (m SeatMap) RowSeatCounts() map[int]int {
	counts := make(map[int]int, len(m.rows))
	for row, count := range m.rows {
		counts[row] = count
	}
	return counts
}

// SeatsInRow returns the seat count of the given row, 0 when the row does
// not exist.
func (m SeatMap) SeatsInRow(row int) int {
	return m.rows[row]
}

func (m SeatMap) HasRow(row int) bool {
	_, ok := m.rows[row]
	return ok
}

// HasSeat reports whether (row, number) is a real seat. Seats are numbered
// 1..count within a row.
func (m SeatMap) HasSeat(row, number int) bool {
	count, ok := m.rows[row]
	return ok && number >= 1 && number <= count
}

// StandardSeatsPerRow returns the common per-row seat count when every row
// has the same width. The second result is false for irregular layouts.
func (m SeatMap) StandardSeatsPerRow() (int, bool) {
	if len(m.rows) == 0 {
		return 0, false
	}
	common := m.rows[m.order[0]]
	for _, count := range m.rows {
		if count != common {
			return 0, false
		}
	}
	return common, true
}
