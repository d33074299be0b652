package services

import (
	"busbooking/internal/domain"
	"busbooking/internal/utils"
)

// RouteView is a route ready for rendering.
type RouteView struct {
	domain.Route
	FareDisplay  string              `json:"fare_display"`
	DateDisplay  string              `json:"date_display"`
	Availability domain.Availability `json:"availability"`
	Bookable     bool                `json:"bookable"`
}

// GroupView is a RouteGroup of rendered routes.
type GroupView struct {
	Key         string      `json:"key"`
	Source      string      `json:"source"`
	Destination string      `json:"destination"`
	Routes      []RouteView `json:"routes"`
}

// BrowseResult backs the home page listing.
type BrowseResult struct {
	Groups       []GroupView `json:"groups"`
	Sources      []string    `json:"sources"`
	Destinations []string    `json:"destinations"`
	Count        int         `json:"count"`
	Skipped      int         `json:"skipped"`
}

// SeatMapView backs the booking page.
type SeatMapView struct {
	Route    RouteView `json:"route"`
	Selected int       `json:"selected,omitempty"`
}

// BookingResult is returned after a successful booking.
type BookingResult struct {
	Booking      domain.Booking      `json:"booking"`
	Availability domain.Availability `json:"availability"`
	Message      string              `json:"message"`
}

// RouteSummary is the slice of a route shown next to a past booking.
type RouteSummary struct {
	ID          domain.ID `json:"id"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	BusName     string    `json:"bus_name,omitempty"`
	Fare        string    `json:"fare,omitempty"`
}

// BookingView is one entry of the booking history.
type BookingView struct {
	domain.Booking
	Route *RouteSummary `json:"route_detail,omitempty"`
}

func newRouteView(r domain.Route, a domain.Availability) RouteView {
	return RouteView{
		Route:        r,
		FareDisplay:  utils.FormatFare(r.Fare),
		DateDisplay:  utils.FormatDate(r.Date),
		Availability: a,
		Bookable:     !a.Full(),
	}
}

func summarize(r domain.Route) *RouteSummary {
	return &RouteSummary{
		ID:          r.ID,
		Source:      r.Source,
		Destination: r.Destination,
		Date:        utils.FormatDate(r.Date),
		Time:        utils.FirstNonEmpty(r.Time, clock(r.DepartureTime)),
		BusName:     r.Bus.Name,
		Fare:        utils.FormatFare(r.Fare),
	}
}
