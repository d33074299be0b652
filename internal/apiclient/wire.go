package apiclient

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/utils"
)

// Stringish tolerates string/number/bool JSON values as a string.
type Stringish string

func (s *Stringish) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null" || len(b) == 0:
		*s = ""
		return nil
	case len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Stringish(str)
		return nil
	default:
		*s = Stringish(strings.Trim(string(b), `"`))
		return nil
	}
}

func (s Stringish) String() string { return strings.TrimSpace(string(s)) }

// Float parses the value as a number, 0 when it is blank or malformed.
func (s Stringish) Float() float64 {
	f, err := utils.ParseAmount(s.String())
	if err != nil {
		return 0
	}
	return f
}

// maxExactFloat is the largest magnitude a float64 holds without losing integer precision.
const maxExactFloat = 1 << 53

// Int parses the value as an integer, 0 when it is blank, malformed or out of range.
func (s Stringish) Int() int {
	str := s.String()
	if n, err := strconv.Atoi(str); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) >= maxExactFloat {
		return 0
	}
	return int(f)
}

// present reports whether the field carried a value.
func (s Stringish) present() bool { return s.String() != "" }

type busPayload struct {
	ID         Stringish `json:"id"`
	BusName    Stringish `json:"bus_name"`
	Name       Stringish `json:"name"`
	BusNumber  Stringish `json:"bus_number"`
	Number     Stringish `json:"registration_number"`
	TotalSeats Stringish `json:"total_seats"`
}

type routePayload struct {
	ID             Stringish       `json:"id"`
	Source         Stringish       `json:"source"`
	Destination    Stringish       `json:"destination"`
	Date           Stringish       `json:"date"`
	Time           Stringish       `json:"time"`
	DepartureTime  Stringish       `json:"departure_time"`
	ArrivalTime    Stringish       `json:"arrival_time"`
	Duration       Stringish       `json:"travel_duration"`
	Fare           Stringish       `json:"fare"`
	Bus            json.RawMessage `json:"bus"`
	BusName        Stringish       `json:"bus_name"`
	BusNumber      Stringish       `json:"bus_number"`
	TotalSeats     Stringish       `json:"total_seats"`
	AvailableSeats Stringish       `json:"available_seats"`
	BookedSeats    []Stringish     `json:"booked_seats"`
}

func (p routePayload) toDomain() domain.Route {
	r := domain.Route{
		ID:          domain.ID(p.ID.Int()),
		Source:      p.Source.String(),
		Destination: p.Destination.String(),
		Time:        p.Time.String(),
		Duration:    p.Duration.String(),
		Fare:        p.Fare.Float(),
		TotalSeats:  p.TotalSeats.Int(),
	}
	if r.Fare < 0 {
		r.Fare = 0
	}
	r.Date, _ = utils.ParseDate(p.Date.String())
	r.DepartureTime, _ = utils.ParseTimestamp(p.DepartureTime.String())
	r.ArrivalTime, _ = utils.ParseTimestamp(p.ArrivalTime.String())
	if r.Date.IsZero() && !r.DepartureTime.IsZero() {
		y, m, d := r.DepartureTime.Date()
		r.Date = dateOf(y, int(m), d)
	}

	r.Bus = decodeBus(p.Bus)
	if r.Bus.Name == "" {
		r.Bus.Name = p.BusName.String()
	}
	if r.Bus.Number == "" {
		r.Bus.Number = p.BusNumber.String()
	}

	if p.AvailableSeats.present() {
		n := p.AvailableSeats.Int()
		r.AvailableSeats = &n
	}
	if p.BookedSeats != nil {
		r.BookedSeats = make([]int, 0, len(p.BookedSeats))
		for _, s := range p.BookedSeats {
			r.BookedSeats = append(r.BookedSeats, s.Int())
		}
	}
	return r
}

// decodeBus accepts a nested bus object or a bare bus id.
func decodeBus(raw json.RawMessage) domain.Bus {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return domain.Bus{}
	}
	if raw[0] != '{' {
		var id Stringish
		if err := json.Unmarshal(raw, &id); err != nil {
			return domain.Bus{}
		}
		return domain.Bus{ID: domain.ID(id.Int())}
	}
	var b busPayload
	if err := json.Unmarshal(raw, &b); err != nil {
		return domain.Bus{}
	}
	return domain.Bus{
		ID:         domain.ID(b.ID.Int()),
		Name:       utils.FirstNonEmpty(b.BusName.String(), b.Name.String()),
		Number:     utils.FirstNonEmpty(b.BusNumber.String(), b.Number.String()),
		TotalSeats: b.TotalSeats.Int(),
	}
}

type bookingPayload struct {
	ID            Stringish       `json:"id"`
	Route         json.RawMessage `json:"route"`
	SeatNumber    Stringish       `json:"seat_number"`
	PaymentStatus Stringish       `json:"payment_status"`
	Status        Stringish       `json:"status"`
	User          Stringish       `json:"user"`
	CreatedAt     Stringish       `json:"created_at"`
}

func (p bookingPayload) toDomain() domain.Booking {
	b := domain.Booking{
		ID:         domain.ID(p.ID.Int()),
		RouteID:    routeRef(p.Route),
		SeatNumber: p.SeatNumber.Int(),
		Status:     domain.ParseBookingStatus(utils.FirstNonEmpty(p.PaymentStatus.String(), p.Status.String())),
		UserID:     domain.ID(p.User.Int()),
	}
	b.CreatedAt, _ = utils.ParseTimestamp(p.CreatedAt.String())
	return b
}

// routeRef accepts a route id or an embedded route object.
func routeRef(raw json.RawMessage) domain.ID {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	if raw[0] == '{' {
		var nested struct {
			ID Stringish `json:"id"`
		}
		if err := json.Unmarshal(raw, &nested); err != nil {
			return 0
		}
		return domain.ID(nested.ID.Int())
	}
	var id Stringish
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0
	}
	return domain.ID(id.Int())
}

type tokenPayload struct {
	Access  Stringish `json:"access"`
	Token   Stringish `json:"token"`
	Refresh Stringish `json:"refresh"`
}

type errorPayload struct {
	Detail  Stringish `json:"detail"`
	Error   Stringish `json:"error"`
	Message Stringish `json:"message"`
}

func dateOf(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
