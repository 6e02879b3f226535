package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
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
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// IDParam parses the :id path parameter.
func IDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// PageParams parses ?page= and ?limit= with the usual caps.
func PageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(strings.TrimSpace(c.Query("page")))
	limit, _ = strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}

// QueryID parses an optional numeric query param like ?client_id=.
func QueryID(c *gin.Context, name string) int64 {
	id, _ := strconv.ParseInt(strings.TrimSpace(c.Query(name)), 10, 64)
	if id < 0 {
		return 0
	}
	return id
}
