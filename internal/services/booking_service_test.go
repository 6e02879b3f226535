package services

import (
	"testing"
	"time"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var bookingCols = []string{
	"id", "client_id", "vehicle_id", "driver_id", "route_from", "route_to",
	"pickup_at", "fare", "status", "notes", "created_at", "paid_amount",
}

func TestBookingGet_DerivesStatusFromPayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	pickup := now.Add(48 * time.Hour)
	created := now.Add(-24 * time.Hour)

	mock.ExpectQuery("FROM bookings b").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 7, nil, nil, "Airport", "Old Town", pickup, "200.00", "pending", "", created, "200.00"))

	svc := BookingService{DB: db, Now: func() time.Time { return now }}
	view, err := svc.Get(5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Stored status stays pending; the derived one reflects full payment.
	if view.Status != models.BookingPending {
		t.Errorf("stored status = %s, want pending", view.Status)
	}
	if view.DerivedStatus != models.BookingCompleted {
		t.Errorf("derived status = %s, want completed", view.DerivedStatus)
	}
	if !view.PaidAmount.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("paid = %s, want 200", view.PaidAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBookingGet_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	svc := BookingService{DB: db}
	_, err = svc.Get(99)
	if !domain.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestBookingCreate_ValidatesInput(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	svc := BookingService{DB: db}
	pickup := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		booking models.Booking
	}{
		{"missing client", models.Booking{Fare: decimal.Zero, PickupAt: pickup}},
		{"negative fare", models.Booking{ClientID: 7, Fare: decimal.RequireFromString("-1"), PickupAt: pickup}},
		{"missing pickup", models.Booking{ClientID: 7, Fare: decimal.Zero}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(CreateBookingInput{Booking: tc.booking, CreateReceivable: true})
			if !domain.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	// Invalid payloads never reach the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestBookingRestore_RequiresCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM bookings b").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 7, nil, nil, "A", "B", now.Add(time.Hour), "100.00", "pending", "", now, "0.00"))

	svc := BookingService{DB: db, Now: func() time.Time { return now }}
	_, err = svc.Restore(5)
	if !domain.IsConflict(err) {
		t.Errorf("expected conflict error, got %v", err)
	}
}
