package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders an e-ticket PDF for one of the caller's bookings.
type DocsService struct {
	Bookings BookingService
	Loader   func(ctx context.Context, token string, bookingID domain.ID) (BookingView, error)
}

func (s DocsService) GenerateETicket(ctx context.Context, token string, bookingID domain.ID) ([]byte, string, error) {
	view, err := s.load(ctx, token, bookingID)
	if err != nil {
		return nil, "", err
	}
	if view.Status == domain.BookingStatusFailed {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "no ticket for a failed booking"}
	}
	utils.LogEvent(utils.RequestID(ctx), "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(view)
}

func (s DocsService) load(ctx context.Context, token string, bookingID domain.ID) (BookingView, error) {
	if s.Loader != nil {
		return s.Loader(ctx, token, bookingID)
	}
	return s.Bookings.Find(ctx, token, bookingID)
}

func buildETicketPDF(v BookingView) ([]byte, string, error) {
	r := RouteSummary{}
	if v.Route != nil {
		r = *v.Route
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, s := range eticketLines(v, r) {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger (one seat). Please show it when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("e-ticket-%d-seat-%s.pdf", v.ID, utils.SafeFilenamePart(fmt.Sprint(v.SeatNumber)))
	return buf.Bytes(), filename, nil
}

func eticketLines(v BookingView, r RouteSummary) []string {
	return []string{
		fmt.Sprintf("Booking        : #%d", v.ID),
		fmt.Sprintf("Booked at      : %s", safe(utils.FormatDateTime(v.CreatedAt), "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(r.Source, "-"), safe(r.Destination, "-")),
		fmt.Sprintf("Date / Time    : %s %s", safe(r.Date, "-"), safe(r.Time, "")),
		fmt.Sprintf("Bus            : %s", safe(r.BusName, "-")),
		fmt.Sprintf("Seat           : %d", v.SeatNumber),
		fmt.Sprintf("Fare           : %s", safe(r.Fare, "-")),
		fmt.Sprintf("Payment status : %s", strings.ToUpper(string(v.Status))),
		fmt.Sprintf("Ticket code    : TCK-%d-%d", v.ID, v.SeatNumber),
	}
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
