package domain

// SeatState is the per-render state of one seat.
type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatBooked    SeatState = "booked"
	SeatSelected  SeatState = "selected"
)

// Seat pairs a seat number with its state.
type Seat struct {
	Number int       `json:"number"`
	State  SeatState `json:"state"`
}

// SeatMap lists every seat of a route in number order, 1..n with no gaps.
type SeatMap []Seat

// State returns the state of seat n and whether n is on the map.
func (m SeatMap) State(n int) (SeatState, bool) {
	if n < 1 || n > len(m) {
		return "", false
	}
	s := m[n-1]
	if s.Number != n {
		for _, seat := range m {
			if seat.Number == n {
				return seat.State, true
			}
		}
		return "", false
	}
	return s.State, true
}

// Selected returns the currently selected seat, if any.
func (m SeatMap) Selected() (int, bool) {
	for _, s := range m {
		if s.State == SeatSelected {
			return s.Number, true
		}
	}
	return 0, false
}

// Count returns how many seats are in the given state.
func (m SeatMap) Count(state SeatState) int {
	n := 0
	for _, s := range m {
		if s.State == state {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (m SeatMap) Clone() SeatMap {
	if m == nil {
		return nil
	}
	out := make(SeatMap, len(m))
	copy(out, m)
	return out
}

// AvailabilitySource names where an availability figure came from.
type AvailabilitySource string

const (
	SourceBookings AvailabilitySource = "bookings"
	SourceRoute    AvailabilitySource = "route"
	SourceAPICount AvailabilitySource = "api_count"
	SourceCapacity AvailabilitySource = "capacity"
)

// Availability is the derived view of one route's seats.
type Availability struct {
	RouteID        ID                 `json:"route_id"`
	TotalSeats     int                `json:"total_seats"`
	AvailableCount int                `json:"available_count"`
	BookedCount    int                `json:"booked_count"`
	Seats          SeatMap            `json:"seats"`
	SeatsKnown     bool               `json:"seats_known"`
	Source         AvailabilitySource `json:"source"`
}

// Full reports whether no seat can be booked.
func (a Availability) Full() bool {
	return a.AvailableCount <= 0
}
