package services

import (
	"context"

	"busbooking/internal/domain"
)

// RouteAPI is the read side of the remote booking API.
type RouteAPI interface {
	ListRoutes(ctx context.Context, criteria domain.Criteria) ([]domain.Route, error)
	SearchRoutes(ctx context.Context, criteria domain.Criteria) ([]domain.Route, error)
	GetRoute(ctx context.Context, id domain.ID) (domain.Route, error)
	ListRouteBookings(ctx context.Context, token string, routeID domain.ID) ([]domain.Booking, error)
}

// BookingAPI adds the authenticated booking calls.
type BookingAPI interface {
	RouteAPI
	ListBookings(ctx context.Context, token string) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, token string, req domain.BookingRequest) (domain.Booking, error)
}

// AuthAPI covers account creation and credential exchange.
type AuthAPI interface {
	Signup(ctx context.Context, req domain.SignupRequest) error
	ObtainToken(ctx context.Context, username, password string) (domain.TokenPair, error)
}
