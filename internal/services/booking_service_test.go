package services

import (
	"context"
	"testing"

	"busbooking/internal/availability"
	"busbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingFixture() *fakeAPI {
	return &fakeAPI{
		routes: []domain.Route{
			{ID: 5, Source: "New Delhi", Destination: "Jaipur", Date: mustDay("2025-03-01"), Fare: 450, TotalSeats: 4, Bus: domain.Bus{Name: "Volvo AC"}},
		},
		bookings: []domain.Booking{
			{ID: 1, RouteID: 5, SeatNumber: 2, Status: domain.BookingStatusConfirmed},
			{ID: 2, RouteID: 5, SeatNumber: 3, Status: domain.BookingStatusFailed},
		},
	}
}

func TestBookingService_Book_Success(t *testing.T) {
	api := bookingFixture()
	svc := BookingService{API: api, Engine: availability.Default}

	res, err := svc.Book(context.Background(), "tok", 5, 3)
	require.NoError(t, err)
	require.Len(t, api.created, 1)
	assert.Equal(t, domain.BookingRequest{Route: 5, SeatNumber: 3}, api.created[0])
	assert.Equal(t, 3, res.Booking.SeatNumber)
	assert.Equal(t, "Seat 3 booked successfully!", res.Message)

	assert.Equal(t, 2, res.Availability.AvailableCount)
	st, _ := res.Availability.Seats.State(3)
	assert.Equal(t, domain.SeatBooked, st)
	_, selected := res.Availability.Seats.Selected()
	assert.False(t, selected)
}

func TestBookingService_Book_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		token string
		route domain.ID
		seat  int
		check func(error) bool
	}{
		{"no token", "", 5, 1, domain.IsUnauthorized},
		{"no seat selected", "tok", 5, 0, domain.IsValidation},
		{"bad route id", "tok", 0, 1, domain.IsValidation},
		{"unknown route", "tok", 99, 1, domain.IsNotFound},
		{"out of range seat", "tok", 5, 5, domain.IsValidation},
		{"already booked", "tok", 5, 2, domain.IsConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := bookingFixture()
			_, err := BookingService{API: api}.Book(context.Background(), tt.token, tt.route, tt.seat)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %T: %v", err, err)
			assert.Empty(t, api.created)
		})
	}
}

func TestBookingService_Book_UpstreamUnauthorized(t *testing.T) {
	api := bookingFixture()
	api.createErr = domain.UnauthorizedError{Msg: "Token is invalid or expired"}
	_, err := BookingService{API: api}.Book(context.Background(), "tok", 5, 1)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestBookingService_History_EnrichesRoutes(t *testing.T) {
	api := bookingFixture()
	api.bookings = append(api.bookings, domain.Booking{ID: 3, RouteID: 77, SeatNumber: 1})

	views, err := BookingService{API: api}.History(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, views, 3)
	require.NotNil(t, views[0].Route)
	assert.Equal(t, "New Delhi", views[0].Route.Source)
	assert.Equal(t, "2025-03-01", views[0].Route.Date)
	assert.Equal(t, "Volvo AC", views[0].Route.BusName)
	assert.Nil(t, views[2].Route)
}

func TestBookingService_History_RouteListingFailureIsSoft(t *testing.T) {
	api := bookingFixture()
	api.listErr = domain.UpstreamError{Op: "list_routes", Status: 503}

	views, err := BookingService{API: api}.History(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Nil(t, views[0].Route)
}

func TestBookingService_Find(t *testing.T) {
	api := bookingFixture()
	svc := BookingService{API: api}

	v, err := svc.Find(context.Background(), "tok", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v.SeatNumber)
	require.NotNil(t, v.Route)
	assert.Equal(t, "Jaipur", v.Route.Destination)

	_, err = svc.Find(context.Background(), "tok", 404)
	assert.True(t, domain.IsNotFound(err))
}
