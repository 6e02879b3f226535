package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleInvoiceDocData() invoiceDocData {
	return invoiceDocData{
		InvoiceNumber: "INV-42-1",
		IssuedAt:      time.Date(2026, 4, 6, 10, 0, 0, 0, time.Local),
		ClientName:    "Amina",
		ClientPhone:   "+212600000000",
		RouteFrom:     "Airport",
		RouteTo:       "Old Town",
		PickupAt:      time.Date(2026, 4, 5, 14, 30, 0, 0, time.Local),
		Amount:        decimal.RequireFromString("350.50"),
		PaidAmount:    decimal.RequireFromString("100.00"),
		CompanyName:   "Sahara Tours",
	}
}

func TestGeneratePDFUsesLoader(t *testing.T) {
	var askedFor int64
	svc := InvoiceService{
		Loader: func(invoiceID int64) (invoiceDocData, error) {
			askedFor = invoiceID
			return sampleInvoiceDocData(), nil
		},
	}

	pdfBytes, filename, err := svc.GeneratePDF(42)
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if askedFor != 42 {
		t.Errorf("loader asked for invoice %d, want 42", askedFor)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, starts with %q", pdfBytes[:min(8, len(pdfBytes))])
	}
	if filename != "INV-42-1.pdf" {
		t.Errorf("filename = %q, want INV-42-1.pdf", filename)
	}
}

func TestBuildInvoicePDFHandlesMissingFields(t *testing.T) {
	d := sampleInvoiceDocData()
	d.ClientName = ""
	d.RouteFrom = ""
	d.RouteTo = ""

	pdfBytes, _, err := buildInvoicePDF(d)
	if err != nil {
		t.Fatalf("buildInvoicePDF: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"INV-42-1", "INV-42-1"},
		{"INV 42/1", "INV_42_1"},
		{"  ", "invoice"},
	}
	for _, tc := range cases {
		if got := safeFilenamePart(tc.in); got != tc.want {
			t.Errorf("safeFilenamePart(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
