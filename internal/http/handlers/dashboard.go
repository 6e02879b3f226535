package handlers

import (
	"net/http"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard/summary
func GetDashboardSummary(c *gin.Context) {
	summary, err := services.DashboardService{}.Summary()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
