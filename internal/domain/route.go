package domain

import "time"

// Bus is the vehicle operating a route.
type Bus struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Number     string `json:"number"`
	TotalSeats int    `json:"total_seats"`
}

// Route is one scheduled trip between a source and a destination.
//
// TotalSeats is zero when the API omitted it. AvailableSeats is nil when the API did not
// report a count, and BookedSeats is nil when no booked list was embedded in the record.
type Route struct {
	ID             ID        `json:"id"`
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	Date           time.Time `json:"date,omitzero"`
	Time           string    `json:"time,omitempty"`
	DepartureTime  time.Time `json:"departure_time,omitzero"`
	ArrivalTime    time.Time `json:"arrival_time,omitzero"`
	Duration       string    `json:"travel_duration,omitempty"`
	Fare           float64   `json:"fare"`
	Bus            Bus       `json:"bus"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats *int      `json:"available_seats,omitempty"`
	BookedSeats    []int     `json:"booked_seats,omitempty"`
}

// Key is the grouping key "source → destination".
func (r Route) Key() string {
	return r.Source + " → " + r.Destination
}

// RouteGroup buckets routes sharing a source and destination.
type RouteGroup struct {
	Key         string  `json:"key"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Routes      []Route `json:"routes"`
}
