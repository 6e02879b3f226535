package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/repositories"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// InvoiceService issues invoices from bookings and renders them as PDF.
type InvoiceService struct {
	InvoiceRepo repositories.InvoiceRepository
	BookingRepo repositories.BookingRepository
	ClientRepo  repositories.ClientRepository
	DB          *sql.DB
	CompanyName string
	RequestID   string

	// Loader overrides invoice data loading in tests.
	Loader func(invoiceID int64) (invoiceDocData, error)
}

type invoiceDocData struct {
	InvoiceNumber string
	IssuedAt      time.Time
	ClientName    string
	ClientPhone   string
	RouteFrom     string
	RouteTo       string
	PickupAt      time.Time
	Amount        decimal.Decimal
	PaidAmount    decimal.Decimal
	CompanyName   string
}

func (s InvoiceService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s InvoiceService) company() string {
	if s.CompanyName != "" {
		return s.CompanyName
	}
	return "Tourism Transport"
}

// CreateFromBooking issues an invoice over the booking's fare.
func (s InvoiceService) CreateFromBooking(bookingID int64) (models.Invoice, error) {
	row, err := s.bookings().GetWithPaid(bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Invoice{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Invoice{}, domain.InternalError{Msg: "failed to fetch booking", Err: err}
	}
	if row.Booking.Status == models.BookingCancelled {
		return models.Invoice{}, domain.ConflictError{Resource: "booking", Msg: "cancelled bookings cannot be invoiced"}
	}

	seq, err := s.invoices().CountForBooking(bookingID)
	if err != nil {
		return models.Invoice{}, domain.InternalError{Msg: "failed to number invoice", Err: err}
	}

	inv := models.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%d-%d", bookingID, seq+1),
		BookingID:     bookingID,
		ClientID:      row.Booking.ClientID,
		Amount:        row.Booking.Fare,
		IssuedAt:      time.Now(),
	}
	id, err := s.invoices().Create(inv)
	if err != nil {
		return models.Invoice{}, domain.InternalError{Msg: "failed to create invoice", Err: err}
	}
	inv.ID = id
	utils.LogEvent(s.RequestID, "invoices", "create", fmt.Sprintf("invoice_id=%d booking_id=%d", id, bookingID))
	return inv, nil
}

// Get fetches one invoice.
func (s InvoiceService) Get(id int64) (models.Invoice, error) {
	inv, err := s.invoices().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Invoice{}, domain.NotFoundError{Resource: "invoice", Err: err}
		}
		return models.Invoice{}, domain.InternalError{Msg: "failed to fetch invoice", Err: err}
	}
	return inv, nil
}

// List returns invoices, optionally per client.
func (s InvoiceService) List(clientID int64, page, limit int) ([]models.Invoice, error) {
	out, err := s.invoices().List(clientID, page, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list invoices", Err: err}
	}
	return out, nil
}

// GeneratePDF renders the invoice document and returns the bytes with a
// download filename.
func (s InvoiceService) GeneratePDF(invoiceID int64) ([]byte, string, error) {
	data, err := s.loadDocData(invoiceID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "invoices", "generate_pdf", fmt.Sprintf("invoice_id=%d", invoiceID))
	return buildInvoicePDF(data)
}

func (s InvoiceService) loadDocData(invoiceID int64) (invoiceDocData, error) {
	if s.Loader != nil {
		return s.Loader(invoiceID)
	}

	inv, err := s.Get(invoiceID)
	if err != nil {
		return invoiceDocData{}, err
	}
	out := invoiceDocData{
		InvoiceNumber: inv.InvoiceNumber,
		IssuedAt:      inv.IssuedAt,
		Amount:        inv.Amount,
		CompanyName:   s.company(),
	}
	if row, err := s.bookings().GetWithPaid(inv.BookingID); err == nil {
		out.RouteFrom = row.Booking.RouteFrom
		out.RouteTo = row.Booking.RouteTo
		out.PickupAt = row.Booking.PickupAt
		out.PaidAmount = row.Paid
	}
	if client, err := s.clients().GetByID(inv.ClientID); err == nil {
		out.ClientName = client.Name
		out.ClientPhone = client.Phone
	}
	return out, nil
}

func buildInvoicePDF(d invoiceDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, strings.ToUpper(d.CompanyName))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "INVOICE "+d.InvoiceNumber)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Issued : "+d.IssuedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.ClientName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Phone : %s", safe(d.ClientPhone, "-")))
	pdf.Ln(10)

	desc := fmt.Sprintf("Transport service %s -> %s (%s)",
		safe(d.RouteFrom, "-"), safe(d.RouteTo, "-"),
		d.PickupAt.Format("2006-01-02 15:04"),
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Amount      : "+utils.FormatAmount(d.Amount))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Paid so far : "+utils.FormatAmount(d.PaidAmount))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Balance due : "+utils.FormatAmount(d.Amount.Sub(d.PaidAmount)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payments are allocated against the oldest outstanding balance first.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s.pdf", safeFilenamePart(d.InvoiceNumber))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "invoice"
	}
	return b.String()
}

func (s InvoiceService) invoices() repositories.InvoiceRepository {
	if s.InvoiceRepo.DB != nil {
		return s.InvoiceRepo
	}
	return repositories.InvoiceRepository{DB: s.db()}
}

func (s InvoiceService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s InvoiceService) clients() repositories.ClientRepository {
	if s.ClientRepo.DB != nil {
		return s.ClientRepo
	}
	return repositories.ClientRepository{DB: s.db()}
}
