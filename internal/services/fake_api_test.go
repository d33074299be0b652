package services

import (
	"context"
	"time"

	"busbooking/internal/domain"
)

// fakeAPI is an in-memory stand-in for the remote booking API.
type fakeAPI struct {
	routes        []domain.Route
	searchRoutes  []domain.Route
	bookings      []domain.Booking
	listErr       error
	bookingsErr   error
	createErr     error
	tokenPair     domain.TokenPair
	tokenErr      error
	signupErr     error
	created       []domain.BookingRequest
	signups       []domain.SignupRequest
	lastCriteria  domain.Criteria
	routeBookings int
}

func (f *fakeAPI) ListRoutes(_ context.Context, c domain.Criteria) ([]domain.Route, error) {
	f.lastCriteria = c
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.routes, nil
}

func (f *fakeAPI) SearchRoutes(_ context.Context, c domain.Criteria) ([]domain.Route, error) {
	f.lastCriteria = c
	return f.searchRoutes, nil
}

func (f *fakeAPI) GetRoute(_ context.Context, id domain.ID) (domain.Route, error) {
	for _, r := range f.routes {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Route{}, domain.NotFoundError{Resource: "route"}
}

func (f *fakeAPI) ListRouteBookings(_ context.Context, token string, routeID domain.ID) ([]domain.Booking, error) {
	f.routeBookings++
	if token == "" {
		return nil, domain.UnauthorizedError{}
	}
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	out := []domain.Booking{}
	for _, b := range f.bookings {
		if b.RouteID == routeID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAPI) ListBookings(_ context.Context, token string) ([]domain.Booking, error) {
	if token == "" {
		return nil, domain.UnauthorizedError{}
	}
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	return f.bookings, nil
}

func (f *fakeAPI) CreateBooking(_ context.Context, _ string, req domain.BookingRequest) (domain.Booking, error) {
	if f.createErr != nil {
		return domain.Booking{}, f.createErr
	}
	f.created = append(f.created, req)
	b := domain.Booking{
		ID:         domain.ID(100 + len(f.created)),
		RouteID:    req.Route,
		SeatNumber: req.SeatNumber,
		Status:     domain.BookingStatusPending,
	}
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeAPI) Signup(_ context.Context, req domain.SignupRequest) error {
	f.signups = append(f.signups, req)
	return f.signupErr
}

func (f *fakeAPI) ObtainToken(_ context.Context, _, _ string) (domain.TokenPair, error) {
	return f.tokenPair, f.tokenErr
}

func mustDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(n int) *int { return &n }
