package repositories

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var recCols = []string{
	"id", "client_id", "booking_id", "amount", "paid_amount",
	"remaining_amount", "due_date", "status", "description", "created_at",
}

func TestListOutstandingByClient_OrderAndFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE client_id=\? AND status IN \('pending','partial'\) ORDER BY COALESCE\(due_date, created_at\) ASC, id ASC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(recCols).
			AddRow(3, 7, 12, "80.00", "20.00", "60.00", due, "partial", "Booking #12", created).
			AddRow(5, 7, nil, "40.00", "0.00", "40.00", nil, "pending", "", created.Add(time.Hour)))

	repo := ReceivableRepository{DB: db}
	out, err := repo.ListOutstandingByClient(nil, 7)
	if err != nil {
		t.Fatalf("ListOutstandingByClient: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 receivables, got %d", len(out))
	}

	first := out[0]
	if first.ID != 3 {
		t.Errorf("expected row 3 first, got %d", first.ID)
	}
	if first.BookingID == nil || *first.BookingID != 12 {
		t.Errorf("booking id not scanned: %v", first.BookingID)
	}
	if first.DueDate == nil || !first.DueDate.Equal(due) {
		t.Errorf("due date not scanned: %v", first.DueDate)
	}
	if !first.RemainingAmount.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("remaining = %s, want 60", first.RemainingAmount)
	}

	second := out[1]
	if second.BookingID != nil {
		t.Errorf("expected nil booking id, got %v", *second.BookingID)
	}
	if second.DueDate != nil {
		t.Errorf("expected nil due date, got %v", *second.DueDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListOutstandingByClientForUpdate_LocksRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`ORDER BY COALESCE\(due_date, created_at\) ASC, id ASC FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(recCols))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	repo := ReceivableRepository{DB: db}
	if _, err := repo.ListOutstandingByClientForUpdate(tx, 7); err != nil {
		t.Fatalf("ListOutstandingByClientForUpdate: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancel_RefusesRowsWithPayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`paid_amount=0 AND status IN \('pending','overdue'\)`).
		WithArgs("cancelled", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ReceivableRepository{DB: db}
	ok, err := repo.Cancel(9)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if ok {
		t.Error("cancel reported success even though no row matched")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`due_date IS NOT NULL AND due_date < \?`).
		WithArgs("overdue", "2026-03-15").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := ReceivableRepository{DB: db}
	n, err := repo.MarkOverdue(now)
	if err != nil {
		t.Fatalf("MarkOverdue: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 rows flipped, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
