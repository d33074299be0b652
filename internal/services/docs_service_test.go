package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"busbooking/internal/domain"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(_ context.Context, _ string, id domain.ID) (BookingView, error) {
		return BookingView{
			Booking: domain.Booking{ID: id, RouteID: 5, SeatNumber: 12, Status: domain.BookingStatusConfirmed},
			Route: &RouteSummary{
				ID:          5,
				Source:      "New Delhi",
				Destination: "Jaipur",
				Date:        "2025-03-01",
				Time:        "08:30",
				BusName:     "Volvo AC",
				Fare:        "Rs 450.00",
			},
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(context.Background(), "tok", 40)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "e-ticket-40-seat-12.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceRejectsFailedBooking(t *testing.T) {
	loader := func(_ context.Context, _ string, id domain.ID) (BookingView, error) {
		return BookingView{Booking: domain.Booking{ID: id, SeatNumber: 1, Status: domain.BookingStatusFailed}}, nil
	}
	_, _, err := DocsService{Loader: loader}.GenerateETicket(context.Background(), "tok", 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDocsServiceWithoutRouteDetail(t *testing.T) {
	api := &fakeAPI{bookings: []domain.Booking{{ID: 7, RouteID: 3, SeatNumber: 4, Status: domain.BookingStatusPending}}}
	svc := DocsService{Bookings: BookingService{API: api}}

	pdf, _, err := svc.GenerateETicket(context.Background(), "tok", 7)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty pdf")
	}
}

func TestETicketLines(t *testing.T) {
	created := time.Date(2025, 2, 20, 9, 15, 0, 0, time.UTC)
	v := BookingView{Booking: domain.Booking{ID: 7, SeatNumber: 3, Status: domain.BookingStatusPending, CreatedAt: created}}

	lines := strings.Join(eticketLines(v, RouteSummary{Source: "Pune"}), "\n")
	for _, want := range []string{"Booked at      : 2025-02-20 09:15:00", "Route          : Pune -> -", "PENDING", "TCK-7-3"} {
		if !strings.Contains(lines, want) {
			t.Fatalf("missing %q in:\n%s", want, lines)
		}
	}

	v.CreatedAt = time.Time{}
	if got := eticketLines(v, RouteSummary{})[1]; got != "Booked at      : -" {
		t.Fatalf("zero created_at: %q", got)
	}
}
