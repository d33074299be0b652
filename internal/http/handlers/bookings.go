package handlers

import (
	"net/http"

	"busbooking/internal/apiclient"
	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	Route         apiclient.Stringish `json:"route"`
	RouteID       apiclient.Stringish `json:"route_id"`
	SeatNumber    apiclient.Stringish `json:"seat_number"`
	SeatNumberAlt apiclient.Stringish `json:"seat"`
}

// POST /api/bookings
func (h Handler) CreateBooking(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	routeID := req.Route.Int()
	if routeID == 0 {
		routeID = req.RouteID.Int()
	}
	seat := req.SeatNumber.Int()
	if seat == 0 {
		seat = req.SeatNumberAlt.Int()
	}
	if routeID <= 0 || seat <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "route and seat_number are required", nil)
		return
	}

	res, err := h.Bookings.Book(c.Request.Context(), token, domain.ID(routeID), seat)
	if err != nil {
		h.fail(c, "bookings", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/bookings
func (h Handler) ListBookings(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	views, err := h.Bookings.History(c.Request.Context(), token)
	if err != nil {
		h.fail(c, "bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views, "count": len(views)})
}

// GET /api/bookings/:id/e-ticket
func (h Handler) ETicket(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := h.Docs.GenerateETicket(c.Request.Context(), token, id)
	if err != nil {
		h.fail(c, "docs", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
