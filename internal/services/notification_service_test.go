package services

import (
	"strings"
	"testing"
	"time"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	"github.com/shopspring/decimal"
)

func TestComposeBookingConfirmation(t *testing.T) {
	svc := NotificationService{CompanyName: "Sahara Tours"}
	b := models.Booking{
		ID:        42,
		RouteFrom: "Airport",
		RouteTo:   "Old Town",
		PickupAt:  time.Date(2026, 4, 5, 14, 30, 0, 0, time.Local),
		Fare:      decimal.RequireFromString("350.50"),
	}
	c := models.Client{Name: "Amina"}

	msg := svc.ComposeBookingConfirmation(b, c)

	for _, want := range []string{
		"Hello Amina",
		"booking #42",
		"Airport - Old Town",
		"2026-04-05 14:30:00",
		"350.50",
		"Sahara Tours",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("confirmation text missing %q:\n%s", want, msg)
		}
	}
}

func TestComposePaymentReceipt(t *testing.T) {
	svc := NotificationService{CompanyName: "Sahara Tours"}

	msg := svc.ComposePaymentReceipt("Amina", decimal.RequireFromString("120"), "PAY-abc")

	for _, want := range []string{"Hello Amina", "120.00", "PAY-abc", "Sahara Tours"} {
		if !strings.Contains(msg, want) {
			t.Errorf("receipt text missing %q:\n%s", want, msg)
		}
	}
}

func TestComposeUsesDefaultCompanyName(t *testing.T) {
	svc := NotificationService{}
	msg := svc.ComposePaymentReceipt("Amina", decimal.RequireFromString("10"), "PAY-x")
	if !strings.Contains(msg, "Tourism Transport") {
		t.Errorf("expected default company name in:\n%s", msg)
	}
}
