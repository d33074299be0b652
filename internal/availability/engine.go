// Package availability derives view-ready seat maps, availability counts and grouped
// route listings from read-only route and booking snapshots.
//
// Every function is pure: inputs are never mutated and nothing is cached between calls,
// so callers recompute whenever a snapshot, filter or selection changes.
package availability

import (
	"busbooking/internal/domain"
)

// DefaultTotalSeats is the capacity assumed when neither the route nor its bus reports one.
const DefaultTotalSeats = 50

// MaxTotalSeats bounds any reported capacity. Larger figures are treated as absent.
const MaxTotalSeats = 1000

// Engine carries the configurable defaults. The zero value behaves like Default.
type Engine struct {
	DefaultSeats int
}

// Default uses DefaultTotalSeats.
var Default = Engine{DefaultSeats: DefaultTotalSeats}

// TotalSeats resolves a route's capacity: route figure, then bus capacity, then the default.
func (e Engine) TotalSeats(r domain.Route) int {
	for _, n := range []int{r.TotalSeats, r.Bus.TotalSeats, e.DefaultSeats} {
		if n > 0 && n <= MaxTotalSeats {
			return n
		}
	}
	return DefaultTotalSeats
}

// Compute builds the seat map for a route from booked seat numbers.
// Booked numbers outside [1, total] and duplicates are ignored.
func (e Engine) Compute(r domain.Route, booked []int) (domain.Availability, error) {
	if err := ValidateRoute(r); err != nil {
		return domain.Availability{}, err
	}
	total := e.TotalSeats(r)

	taken := make(map[int]struct{}, len(booked))
	for _, n := range booked {
		if n < 1 || n > total {
			continue
		}
		taken[n] = struct{}{}
	}

	seats := make(domain.SeatMap, total)
	for i := range seats {
		n := i + 1
		state := domain.SeatAvailable
		if _, ok := taken[n]; ok {
			state = domain.SeatBooked
		}
		seats[i] = domain.Seat{Number: n, State: state}
	}

	available := total - len(taken)
	if available < 0 {
		available = 0
	}
	return domain.Availability{
		RouteID:        r.ID,
		TotalSeats:     total,
		AvailableCount: available,
		BookedCount:    len(taken),
		Seats:          seats,
		SeatsKnown:     true,
		Source:         domain.SourceBookings,
	}, nil
}

// Resolve picks one source of truth for a route's availability:
// the fetched booking list, then a booked list embedded in the route,
// then the API-reported count, then plain capacity.
func (e Engine) Resolve(r domain.Route, bookings []domain.Booking, fetched bool) (domain.Availability, error) {
	switch {
	case fetched:
		return e.Compute(r, BookedSeatsFor(r.ID, bookings))
	case r.BookedSeats != nil:
		a, err := e.Compute(r, r.BookedSeats)
		if err != nil {
			return a, err
		}
		a.Source = domain.SourceRoute
		return a, nil
	}

	a, err := e.Compute(r, nil)
	if err != nil {
		return a, err
	}
	a.SeatsKnown = false
	a.Source = domain.SourceCapacity
	if r.AvailableSeats != nil {
		a.Source = domain.SourceAPICount
		a.AvailableCount = clamp(*r.AvailableSeats, 0, a.TotalSeats)
		a.BookedCount = a.TotalSeats - a.AvailableCount
	}
	return a, nil
}

// ComputeAvailability is Default.Compute.
func ComputeAvailability(r domain.Route, booked []int) (domain.Availability, error) {
	return Default.Compute(r, booked)
}

// Resolve is Default.Resolve.
func Resolve(r domain.Route, bookings []domain.Booking, fetched bool) (domain.Availability, error) {
	return Default.Resolve(r, bookings, fetched)
}

// BookedSeatsFor extracts the seat numbers held by bookings on the given route.
// Bookings without a route id count, since the list was fetched for this route.
// Failed bookings release their seat.
func BookedSeatsFor(routeID domain.ID, bookings []domain.Booking) []int {
	out := make([]int, 0, len(bookings))
	for _, b := range bookings {
		if (b.RouteID != 0 && b.RouteID != routeID) || !b.Status.HoldsSeat() {
			continue
		}
		out = append(out, b.SeatNumber)
	}
	return out
}

// SelectSeat marks seat n as the single selected seat and returns a new map.
// Booked seats and numbers missing from the map (a stale selection) leave it unchanged.
func SelectSeat(seats domain.SeatMap, n int) domain.SeatMap {
	out := seats.Clone()
	state, ok := seats.State(n)
	if !ok || state == domain.SeatBooked {
		return out
	}
	for i := range out {
		switch {
		case out[i].Number == n:
			out[i].State = domain.SeatSelected
		case out[i].State == domain.SeatSelected:
			out[i].State = domain.SeatAvailable
		}
	}
	return out
}

// ClearSelection reverts any selected seat to available.
func ClearSelection(seats domain.SeatMap) domain.SeatMap {
	out := seats.Clone()
	for i := range out {
		if out[i].State == domain.SeatSelected {
			out[i].State = domain.SeatAvailable
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
