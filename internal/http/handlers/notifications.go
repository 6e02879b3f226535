package handlers

import (
	"net/http"
	"strings"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/http/middleware"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

func notificationService(c *gin.Context) services.NotificationService {
	return services.NotificationService{
		CompanyName: companyName,
		RequestID:   middleware.GetRequestID(c),
	}
}

// GET /api/notifications?status=&page=&limit=
func GetNotifications(c *gin.Context) {
	page, limit := PageParams(c)
	list, err := notificationService(c).List(strings.TrimSpace(c.Query("status")), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// POST /api/notifications/:id/mark-sent
func MarkNotificationSent(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := notificationService(c).SetStatus(id, models.NotificationSent); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked sent"})
}

// POST /api/notifications/:id/mark-failed
func MarkNotificationFailed(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := notificationService(c).SetStatus(id, models.NotificationFailed); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked failed"})
}
