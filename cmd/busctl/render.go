package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"busbooking/internal/domain"
	"busbooking/internal/services"
	"busbooking/internal/utils"
)

const seatsPerRow = 4

func renderBrowse(w io.Writer, res services.BrowseResult) {
	if res.Count == 0 {
		fmt.Fprintln(w, "No routes found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, g := range res.Groups {
		fmt.Fprintf(tw, "%s\n", g.Key)
		for _, r := range g.Routes {
			fmt.Fprintf(tw, "  #%d\t%s %s\t%s\t%s\t%s\n",
				r.ID, r.DateDisplay, r.Time, utils.FirstNonEmpty(r.Bus.Name, "-"), r.FareDisplay, seatsLeft(r.Availability))
		}
	}
	_ = tw.Flush()
	if res.Skipped > 0 {
		fmt.Fprintf(w, "(%d malformed routes hidden)\n", res.Skipped)
	}
}

func seatsLeft(a domain.Availability) string {
	if a.Full() {
		return "sold out"
	}
	return fmt.Sprintf("%d/%d seats left", a.AvailableCount, a.TotalSeats)
}

// renderSeatMap prints the seat grid, two seats either side of an aisle.
func renderSeatMap(w io.Writer, v services.SeatMapView) {
	r := v.Route
	a := r.Availability
	fmt.Fprintf(w, "%s  %s %s  %s\n", r.Key(), r.DateDisplay, r.Time, r.FareDisplay)
	fmt.Fprintf(w, "%s\n\n", seatsLeft(a))

	if !a.SeatsKnown {
		fmt.Fprintln(w, "Seat layout unavailable; login to see which seats are taken.")
		return
	}

	var b strings.Builder
	for i, s := range a.Seats {
		b.WriteString(fmt.Sprintf("%3d%s", s.Number, seatMark(s.State)))
		switch {
		case (i+1)%seatsPerRow == 0 || i == len(a.Seats)-1:
			b.WriteString("\n")
		case (i+1)%(seatsPerRow/2) == 0:
			b.WriteString("   ")
		default:
			b.WriteString(" ")
		}
	}
	fmt.Fprint(w, b.String())
	fmt.Fprintln(w, "\n. available   x booked   * selected")
}

func seatMark(s domain.SeatState) string {
	switch s {
	case domain.SeatBooked:
		return "x"
	case domain.SeatSelected:
		return "*"
	default:
		return "."
	}
}

func renderHistory(w io.Writer, views []services.BookingView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No bookings yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BOOKING\tROUTE\tDATE\tSEAT\tSTATUS")
	for _, b := range views {
		route, date := fmt.Sprintf("#%d", b.RouteID), "-"
		if b.Route != nil {
			route = b.Route.Source + " → " + b.Route.Destination
			date = strings.TrimSpace(b.Route.Date + " " + b.Route.Time)
		}
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%d\t%s\n", b.ID, route, date, b.SeatNumber, b.Status)
	}
	_ = tw.Flush()
}
