package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"busbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", 2*time.Second)
}

func TestClient_ListRoutes_DecodesLenientPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/routes/", r.URL.Path)
		assert.Equal(t, "delhi", r.URL.Query().Get("source"))
		assert.Equal(t, "2025-03-01", r.URL.Query().Get("date"))
		assert.Empty(t, r.URL.Query().Get("destination"))
		_, _ = w.Write([]byte(`[
			{"id": 1, "source": "New Delhi", "destination": "Jaipur", "date": "2025-03-01",
			 "time": "08:30", "fare": "450.00",
			 "bus": {"id": 9, "bus_name": "Volvo AC", "bus_number": "DL01AB1234", "total_seats": 40},
			 "booked_seats": [1, "2"]},
			{"id": "2", "source": "Mumbai", "destination": "Pune", "date": "2025-03-01",
			 "departure_time": "2025-03-01T06:00:00Z", "fare": 300, "bus_name": "Shivneri",
			 "available_seats": 12, "total_seats": 45}
		]`))
	})

	date, _ := time.Parse("2006-01-02", "2025-03-01")
	routes, err := c.ListRoutes(context.Background(), domain.Criteria{Source: " delhi ", Date: date})
	require.NoError(t, err)
	require.Len(t, routes, 2)

	first := routes[0]
	assert.Equal(t, domain.ID(1), first.ID)
	assert.Equal(t, 450.0, first.Fare)
	assert.Equal(t, "Volvo AC", first.Bus.Name)
	assert.Equal(t, 40, first.Bus.TotalSeats)
	assert.Equal(t, []int{1, 2}, first.BookedSeats)
	assert.Nil(t, first.AvailableSeats)
	assert.True(t, first.Date.Equal(date))

	second := routes[1]
	assert.Equal(t, domain.ID(2), second.ID)
	assert.Equal(t, "Shivneri", second.Bus.Name)
	require.NotNil(t, second.AvailableSeats)
	assert.Equal(t, 12, *second.AvailableSeats)
	assert.Equal(t, 45, second.TotalSeats)
	assert.Nil(t, second.BookedSeats)
	assert.Equal(t, 6, second.DepartureTime.Hour())
}

func TestClient_ListRoutes_EmptyCriteriaSendsNoQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	})
	routes, err := c.ListRoutes(context.Background(), domain.Criteria{})
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestClient_GetRoute_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/routes/77/", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	})

	_, err := c.GetRoute(context.Background(), 77)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestClient_ListRouteBookings_SendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("route"))
		_, _ = w.Write([]byte(`[
			{"id": 1, "route": 5, "seat_number": 3, "payment_status": "confirmed"},
			{"id": 2, "route": {"id": 5}, "seat_number": "7", "status": "FAILED"}
		]`))
	})

	bookings, err := c.ListRouteBookings(context.Background(), "tok", 5)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.BookingStatusConfirmed, bookings[0].Status)
	assert.Equal(t, domain.ID(5), bookings[1].RouteID)
	assert.Equal(t, 7, bookings[1].SeatNumber)
	assert.Equal(t, domain.BookingStatusFailed, bookings[1].Status)
}

func TestClient_ListRouteBookings_FillsMissingRoute(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "seat_number": 3, "payment_status": "confirmed"},
			{"id": 2, "route": null, "seat_number": 4}
		]`))
	})

	bookings, err := c.ListRouteBookings(context.Background(), "tok", 7)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.ID(7), bookings[0].RouteID)
	assert.Equal(t, domain.ID(7), bookings[1].RouteID)
}

func TestStringish_IntRejectsOverflow(t *testing.T) {
	cases := map[Stringish]int{
		"42":     42,
		"42.9":   42,
		"1e3":    1000,
		"1e18":   0,
		"-1e300": 0,
		"NaN":    0,
		"Inf":    0,
		"abc":    0,
	}
	for in, want := range cases {
		assert.Equal(t, want, in.Int(), "input %q", in)
	}
}

func TestClient_BookingsRequireToken(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	_, err := c.ListBookings(context.Background(), "")
	assert.True(t, domain.IsUnauthorized(err))
	_, err = c.CreateBooking(context.Background(), "", domain.BookingRequest{Route: 1, SeatNumber: 1})
	assert.True(t, domain.IsUnauthorized(err))
}

func TestClient_CreateBooking(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body domain.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, domain.BookingRequest{Route: 3, SeatNumber: 12}, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 40, "payment_status": "pending"}`))
	})

	b, err := c.CreateBooking(context.Background(), "tok", domain.BookingRequest{Route: 3, SeatNumber: 12})
	require.NoError(t, err)
	assert.Equal(t, domain.ID(40), b.ID)
	assert.Equal(t, domain.ID(3), b.RouteID)
	assert.Equal(t, 12, b.SeatNumber)
	assert.Equal(t, domain.BookingStatusPending, b.Status)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
		msg    string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Token is invalid or expired"}`, domain.IsUnauthorized, "Token is invalid or expired"},
		{"validation", http.StatusBadRequest, `{"seat_number":["This seat is already booked."]}`, domain.IsValidation, "seat_number: This seat is already booked."},
		{"conflict", http.StatusConflict, `{"error":"taken"}`, domain.IsConflict, "taken"},
		{"upstream", http.StatusBadGateway, `<html>bad gateway</html>`, domain.IsUpstream, "create_booking: upstream status 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.CreateBooking(context.Background(), "tok", domain.BookingRequest{Route: 1, SeatNumber: 1})
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error type %T", err)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestClient_ObtainToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/token/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@example.com", body["username"])
		_, _ = w.Write([]byte(`{"access":"a.b.c","refresh":"r"}`))
	})

	pair, err := c.ObtainToken(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", pair.Access)
	assert.Equal(t, "r", pair.Refresh)
}

func TestClient_ObtainToken_MissingAccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.ObtainToken(context.Background(), "u", "p")
	assert.True(t, domain.IsUpstream(err))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(srv.URL, time.Second)
	srv.Close()

	_, err := c.ListRoutes(context.Background(), domain.Criteria{})
	assert.True(t, domain.IsUpstream(err))
}
