package handlers

import (
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/routes?source=&destination=&date=
func (h Handler) ListRoutes(c *gin.Context) {
	criteria, ok := criteriaFromQuery(c)
	if !ok {
		return
	}
	res, err := h.Routes.Browse(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "routes", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/routes/search?source=&destination=&date=
func (h Handler) SearchRoutes(c *gin.Context) {
	criteria, ok := criteriaFromQuery(c)
	if !ok {
		return
	}
	routes, err := h.Routes.Search(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "routes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
}

// GET /api/routes/:id/seats?selected=N
func (h Handler) SeatMap(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	selected := utils.ParsePositiveInt(c.Query("selected"))
	if raw := c.Query("selected"); raw != "" && raw != "0" && selected == 0 {
		respondError(c, http.StatusBadRequest, "invalid_selected", "selected must be a seat number", nil)
		return
	}
	view, err := h.Routes.SeatMap(c.Request.Context(), middleware.GetToken(c), id, selected)
	if err != nil {
		h.fail(c, "routes", err)
		return
	}
	c.JSON(http.StatusOK, view)
}
