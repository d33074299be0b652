package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (domain.ID, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_"+name, name+" must be a positive integer", nil)
		return 0, false
	}
	return domain.ID(id), true
}

// criteriaFromQuery reads source, destination and date. A malformed date is rejected
// rather than silently dropped.
func criteriaFromQuery(c *gin.Context) (domain.Criteria, bool) {
	cr := domain.Criteria{
		Source:      strings.TrimSpace(c.Query("source")),
		Destination: strings.TrimSpace(c.Query("destination")),
	}
	d, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", nil)
		return domain.Criteria{}, false
	}
	cr.Date = d
	return cr, true
}
