package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var receivableCols = []string{
	"id", "client_id", "booking_id", "amount", "paid_amount",
	"remaining_amount", "due_date", "status", "description", "created_at",
}

func outstandingRows(created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(receivableCols).
		AddRow(1, 7, nil, "100.00", "0.00", "100.00", nil, "pending", "Booking #1", created).
		AddRow(2, 7, nil, "50.00", "0.00", "50.00", nil, "pending", "Booking #2", created.Add(time.Hour))
}

func TestAllocate_OldestFirstAndConservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	payDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM clients").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("FROM receivables(.+)FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(outstandingRows(created))

	// 120 over [100, 50]: the older row absorbs 100 and closes, the
	// newer one takes the remaining 20.
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(1), int64(7), "100", "cash", sqlmock.AnyArg(), nil, payDate).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE receivables").
		WithArgs("100", "0", "paid", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(2), int64(7), "20", "cash", sqlmock.AnyArg(), nil, payDate).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec("UPDATE receivables").
		WithArgs("20", "30", "partial", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := PaymentService{DB: db}
	got, err := svc.Allocate(context.Background(), AllocationInput{
		ClientID:    7,
		Amount:      decimal.RequireFromString("120.00"),
		Method:      models.PaymentCash,
		PaymentDate: payDate,
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if len(got.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(got.Payments))
	}
	if got.Payments[0].ReceivableID != 1 || got.Payments[1].ReceivableID != 2 {
		t.Errorf("allocation order wrong: %d then %d", got.Payments[0].ReceivableID, got.Payments[1].ReceivableID)
	}
	sum := decimal.Zero
	for _, p := range got.Payments {
		sum = sum.Add(p.Amount)
	}
	if !sum.Equal(got.Allocated) {
		t.Errorf("payment rows sum to %s, allocated reports %s", sum, got.Allocated)
	}
	if !got.Allocated.Add(got.Unallocated).Equal(decimal.RequireFromString("120.00")) {
		t.Errorf("allocated %s + unallocated %s does not conserve the input amount", got.Allocated, got.Unallocated)
	}
	if !got.Unallocated.IsZero() {
		t.Errorf("expected nothing left over, got %s", got.Unallocated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAllocate_ExcessSurfacedNotDropped(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	payDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM clients").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("FROM receivables(.+)FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(receivableCols).
			AddRow(1, 7, nil, "100.00", "0.00", "100.00", nil, "pending", "", created))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE receivables").
		WithArgs("100", "0", "paid", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := PaymentService{DB: db}
	got, err := svc.Allocate(context.Background(), AllocationInput{
		ClientID:    7,
		Amount:      decimal.RequireFromString("150.00"),
		Method:      models.PaymentTransfer,
		PaymentDate: payDate,
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if !got.Allocated.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("expected 100 allocated, got %s", got.Allocated)
	}
	if !got.Unallocated.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("expected 50 unallocated, got %s", got.Unallocated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAllocate_NoOutstandingReceivables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM clients").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("FROM receivables(.+)FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(receivableCols))
	mock.ExpectCommit()

	svc := PaymentService{DB: db}
	got, err := svc.Allocate(context.Background(), AllocationInput{
		ClientID: 7,
		Amount:   decimal.RequireFromString("40.00"),
		Method:   models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(got.Payments) != 0 {
		t.Errorf("expected no payment rows, got %d", len(got.Payments))
	}
	if !got.Unallocated.Equal(decimal.RequireFromString("40.00")) {
		t.Errorf("the full amount should surface as unallocated, got %s", got.Unallocated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAllocate_RejectsNonPositiveAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	svc := PaymentService{DB: db}
	for _, amount := range []string{"0", "-10"} {
		_, err := svc.Allocate(context.Background(), AllocationInput{
			ClientID: 7,
			Amount:   decimal.RequireFromString(amount),
			Method:   models.PaymentCash,
		})
		if !domain.IsInvalidAmount(err) {
			t.Errorf("amount %s: expected invalid amount error, got %v", amount, err)
		}
	}
	// Validation fails before any SQL runs.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestAllocate_RejectsUnknownMethod(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	svc := PaymentService{DB: db}
	_, err = svc.Allocate(context.Background(), AllocationInput{
		ClientID: 7,
		Amount:   decimal.RequireFromString("10.00"),
		Method:   models.PaymentMethod("barter"),
	})
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAllocate_UnknownClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM clients").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	svc := PaymentService{DB: db}
	_, err = svc.Allocate(context.Background(), AllocationInput{
		ClientID: 99,
		Amount:   decimal.RequireFromString("10.00"),
		Method:   models.PaymentCash,
	})
	if !domain.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAllocate_RollsBackOnMidLoopFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM clients").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("FROM receivables(.+)FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(outstandingRows(created))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("UPDATE receivables").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	svc := PaymentService{DB: db}
	_, err = svc.Allocate(context.Background(), AllocationInput{
		ClientID: 7,
		Amount:   decimal.RequireFromString("120.00"),
		Method:   models.PaymentCash,
	})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("first payment must be rolled back with the failed update: %v", err)
	}
}
