package services

import (
	"context"
	"fmt"

	"busbooking/internal/availability"
	"busbooking/internal/domain"
	"busbooking/internal/utils"
)

// BookingService books seats and lists the caller's bookings.
type BookingService struct {
	API    BookingAPI
	Engine availability.Engine
}

// Book reserves one seat. The seat is checked against a fresh snapshot first so obvious
// conflicts fail fast; the API remains the authority and may still reject the booking.
func (s BookingService) Book(ctx context.Context, token string, routeID domain.ID, seat int) (BookingResult, error) {
	if token == "" {
		return BookingResult{}, domain.UnauthorizedError{Msg: "login required"}
	}
	if routeID <= 0 {
		return BookingResult{}, domain.ValidationError{Field: "route", Msg: "invalid route id"}
	}
	if seat <= 0 {
		return BookingResult{}, domain.ValidationError{Field: "seat_number", Msg: "please select a seat first"}
	}

	route, err := s.API.GetRoute(ctx, routeID)
	if err != nil {
		return BookingResult{}, err
	}
	if route.ID == 0 {
		route.ID = routeID
	}
	bookings, err := s.API.ListRouteBookings(ctx, token, routeID)
	if err != nil {
		return BookingResult{}, err
	}

	before, err := s.Engine.Resolve(route, bookings, true)
	if err != nil {
		return BookingResult{}, err
	}
	state, ok := before.Seats.State(seat)
	if !ok {
		return BookingResult{}, domain.ValidationError{
			Field: "seat_number",
			Msg:   fmt.Sprintf("seat %d is outside 1..%d", seat, before.TotalSeats),
		}
	}
	if state == domain.SeatBooked {
		return BookingResult{}, domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("seat %d is already booked", seat)}
	}

	booking, err := s.API.CreateBooking(ctx, token, domain.BookingRequest{Route: routeID, SeatNumber: seat})
	if err != nil {
		return BookingResult{}, err
	}
	utils.LogEvent(utils.RequestID(ctx), "bookings", "create",
		fmt.Sprintf("booking_id=%d route_id=%d seat=%d", booking.ID, routeID, seat))

	if booking.RouteID == 0 {
		booking.RouteID = routeID
	}
	if booking.SeatNumber == 0 {
		booking.SeatNumber = seat
	}
	after, err := s.Engine.Resolve(route, append(append([]domain.Booking{}, bookings...), booking), true)
	if err != nil {
		return BookingResult{}, err
	}
	after.Seats = availability.ClearSelection(after.Seats)

	return BookingResult{
		Booking:      booking,
		Availability: after,
		Message:      fmt.Sprintf("Seat %d booked successfully!", seat),
	}, nil
}

// History lists the caller's bookings, newest API order preserved, with route details
// attached when the route listing can be fetched.
func (s BookingService) History(ctx context.Context, token string) ([]BookingView, error) {
	if token == "" {
		return nil, domain.UnauthorizedError{Msg: "login required"}
	}
	bookings, err := s.API.ListBookings(ctx, token)
	if err != nil {
		return nil, err
	}

	routes := map[domain.ID]domain.Route{}
	if len(bookings) > 0 {
		all, err := s.API.ListRoutes(ctx, domain.Criteria{})
		if err != nil {
			utils.LogWarn(utils.RequestID(ctx), "bookings", "history_routes", err)
		}
		for _, r := range all {
			routes[r.ID] = r
		}
	}

	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		v := BookingView{Booking: b}
		if r, ok := routes[b.RouteID]; ok {
			v.Route = summarize(r)
		}
		out = append(out, v)
	}
	return out, nil
}

// Find returns one of the caller's bookings.
func (s BookingService) Find(ctx context.Context, token string, bookingID domain.ID) (BookingView, error) {
	if bookingID <= 0 {
		return BookingView{}, domain.ValidationError{Field: "booking", Msg: "invalid booking id"}
	}
	if token == "" {
		return BookingView{}, domain.UnauthorizedError{Msg: "login required"}
	}
	bookings, err := s.API.ListBookings(ctx, token)
	if err != nil {
		return BookingView{}, err
	}
	for _, b := range bookings {
		if b.ID != bookingID {
			continue
		}
		v := BookingView{Booking: b}
		if b.RouteID > 0 {
			if r, err := s.API.GetRoute(ctx, b.RouteID); err == nil {
				v.Route = summarize(r)
			} else {
				utils.LogWarn(utils.RequestID(ctx), "bookings", "find_route", err)
			}
		}
		return v, nil
	}
	return BookingView{}, domain.NotFoundError{Resource: "booking"}
}
