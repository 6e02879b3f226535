package handlers

import (
	"net/http"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/http/middleware"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type invoicePayload struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

func invoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{
		CompanyName: companyName,
		RequestID:   middleware.GetRequestID(c),
	}
}

// companyName is set once at startup from the environment.
var companyName string

// SetCompanyName stores the configured company name for documents.
func SetCompanyName(name string) {
	if name != "" {
		companyName = name
	}
}

// POST /api/invoices
func CreateInvoice(c *gin.Context) {
	var payload invoicePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	inv, err := invoiceService(c).CreateFromBooking(payload.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// GET /api/invoices?client_id=&page=&limit=
func GetInvoices(c *gin.Context) {
	page, limit := PageParams(c)
	list, err := invoiceService(c).List(QueryID(c, "client_id"), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": list})
}

// GET /api/invoices/:id
func GetInvoiceByID(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	inv, err := invoiceService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GET /api/invoices/:id/pdf
func GetInvoicePDF(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	pdf, filename, err := invoiceService(c).GeneratePDF(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
