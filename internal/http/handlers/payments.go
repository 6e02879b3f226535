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

type paymentPayload struct {
	ClientID        int64  `json:"client_id" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	Method          string `json:"method" binding:"required"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
	PaymentDate     string `json:"payment_date"` // optional "YYYY-MM-DD HH:MM:SS"
}

func paymentService(c *gin.Context) services.PaymentService {
	notif := notificationService(c)
	return services.PaymentService{
		NotificationSvc: &notif,
		RequestID:       middleware.GetRequestID(c),
	}
}

// POST /api/payments
//
// Registers one payment and allocates it across the client's
// outstanding receivables, oldest first. The response carries one
// payment row per receivable touched plus any unallocated excess.
func RegisterPayment(c *gin.Context) {
	var payload paymentPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	amount, err := utils.ParseAmount(payload.Amount)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid amount", err)
		return
	}

	in := services.AllocationInput{
		ClientID:        payload.ClientID,
		Amount:          amount,
		Method:          models.PaymentMethod(strings.ToLower(strings.TrimSpace(payload.Method))),
		ReferenceNumber: strings.TrimSpace(payload.ReferenceNumber),
		Notes:           strings.TrimSpace(payload.Notes),
	}
	if s := strings.TrimSpace(payload.PaymentDate); s != "" {
		paymentDate, err := utils.ParseDateTime(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid payment_date, expected YYYY-MM-DD HH:MM:SS", err)
			return
		}
		in.PaymentDate = paymentDate
	}

	result, svcErr := paymentService(c).Allocate(c.Request.Context(), in)
	if svcErr != nil {
		RespondDomainError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GET /api/payments?client_id=&receivable_id=&page=&limit=
func GetPayments(c *gin.Context) {
	page, limit := PageParams(c)
	payments, err := paymentService(c).ListPayments(QueryID(c, "client_id"), QueryID(c, "receivable_id"), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
