package handlers

import (
	"net/http"
	"strings"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/http/middleware"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/services"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type receivablePayload struct {
	ClientID    int64  `json:"client_id" binding:"required"`
	BookingID   *int64 `json:"booking_id"`
	Amount      string `json:"amount" binding:"required"`
	DueDate     string `json:"due_date"` // optional "YYYY-MM-DD"
	Description string `json:"description"`
}

func receivableService(c *gin.Context) services.ReceivableService {
	return services.ReceivableService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/receivables?client_id=&status=&page=&limit=
func GetReceivables(c *gin.Context) {
	page, limit := PageParams(c)
	list, err := receivableService(c).List(QueryID(c, "client_id"), strings.TrimSpace(c.Query("status")), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receivables": list})
}

// GET /api/receivables/outstanding?client_id=
//
// The allocator's candidate query, exposed read-only: pending/partial
// receivables in allocation order.
func GetOutstandingReceivables(c *gin.Context) {
	list, err := receivableService(c).ListOutstanding(QueryID(c, "client_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receivables": list})
}

// GET /api/receivables/:id
func GetReceivableByID(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	rec, err := receivableService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/receivables
func CreateReceivable(c *gin.Context) {
	var payload receivablePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	amount, err := utils.ParseAmount(payload.Amount)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid amount", err)
		return
	}

	rec := models.Receivable{
		ClientID:    payload.ClientID,
		BookingID:   payload.BookingID,
		Amount:      amount,
		Description: strings.TrimSpace(payload.Description),
	}
	if s := strings.TrimSpace(payload.DueDate); s != "" {
		due, err := utils.ParseDate(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid due_date, expected YYYY-MM-DD", err)
			return
		}
		rec.DueDate = &due
	}

	created, svcErr := receivableService(c).Create(rec)
	if svcErr != nil {
		RespondDomainError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/receivables/:id/cancel
func CancelReceivable(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	rec, err := receivableService(c).Cancel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/receivables/mark-overdue
func MarkOverdueReceivables(c *gin.Context) {
	n, err := receivableService(c).MarkOverdue()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
