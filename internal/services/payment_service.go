package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/repositories"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService allocates incoming payments across a client's
// outstanding receivables, oldest debt first.
type PaymentService struct {
	ReceivableRepo  repositories.ReceivableRepository
	PaymentRepo     repositories.PaymentRepository
	ClientRepo      repositories.ClientRepository
	NotificationSvc *NotificationService
	DB              *sql.DB
	RequestID       string

	Now func() time.Time
}

// clientLocks serializes allocations per client across requests. The
// row locks inside the transaction already prevent double-spend against
// one MySQL; the mutex keeps concurrent calls for the same client from
// deadlocking on interleaved lock acquisition and keeps ordering stable.
var clientLocks sync.Map

func lockClient(clientID int64) *sync.Mutex {
	mu, _ := clientLocks.LoadOrStore(clientID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// AllocationInput is one "register payment" user action.
type AllocationInput struct {
	ClientID        int64
	Amount          decimal.Decimal
	Method          models.PaymentMethod
	ReferenceNumber string
	Notes           string
	PaymentDate     time.Time
}

// AllocationResult reports what the allocator did. Unallocated carries
// any excess over the client's total outstanding; it is surfaced to the
// caller instead of silently vanishing, and no credit record is created.
type AllocationResult struct {
	Payments    []models.Payment `json:"payments"`
	Allocated   decimal.Decimal  `json:"allocated"`
	Unallocated decimal.Decimal  `json:"unallocated"`
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Allocate distributes in.Amount across the client's pending/partial
// receivables in oldest-first order, capping each step at the
// receivable's remaining amount and writing one payment row per
// receivable touched. The whole loop runs in a single transaction with
// the candidate rows locked, so a failure rolls everything back and two
// concurrent payments can never spend the same receivable headroom.
func (s PaymentService) Allocate(ctx context.Context, in AllocationInput) (AllocationResult, error) {
	if !in.Amount.IsPositive() {
		return AllocationResult{}, domain.InvalidAmountError{Amount: in.Amount.String()}
	}
	if !in.Method.IsValid() {
		return AllocationResult{}, domain.ValidationError{Field: "method", Msg: fmt.Sprintf("unknown payment method %q", in.Method)}
	}
	if in.ClientID <= 0 {
		return AllocationResult{}, domain.ValidationError{Field: "client_id", Msg: "invalid client id"}
	}

	mu := lockClient(in.ClientID)
	mu.Lock()
	defer mu.Unlock()

	db := s.db()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return AllocationResult{}, domain.InternalError{Msg: "failed to start allocation", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := s.clients().Exists(tx, in.ClientID)
	if err != nil {
		return AllocationResult{}, domain.InternalError{Msg: "client lookup failed", Err: err}
	}
	if !ok {
		return AllocationResult{}, domain.NotFoundError{Resource: "client"}
	}

	candidates, err := s.receivables().ListOutstandingByClientForUpdate(tx, in.ClientID)
	if err != nil {
		return AllocationResult{}, domain.InternalError{Msg: "failed to list outstanding receivables", Err: err}
	}

	paymentDate := in.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = s.now()
	}
	reference := in.ReferenceNumber
	if reference == "" {
		reference = "PAY-" + uuid.NewString()
	}

	result := AllocationResult{
		Payments:    []models.Payment{},
		Allocated:   decimal.Zero,
		Unallocated: decimal.Zero,
	}

	remaining := in.Amount
	for i := range candidates {
		if !remaining.IsPositive() {
			break
		}
		rec := &candidates[i]
		applied := rec.Apply(remaining)
		if !applied.IsPositive() {
			continue
		}

		payment := models.Payment{
			ReceivableID:    rec.ID,
			ClientID:        in.ClientID,
			Amount:          applied,
			Method:          in.Method,
			ReferenceNumber: reference,
			Notes:           in.Notes,
			PaymentDate:     paymentDate,
		}
		id, err := s.payments().Insert(tx, payment)
		if err != nil {
			return AllocationResult{}, domain.InternalError{Msg: "failed to record payment", Err: err}
		}
		payment.ID = id

		if err := s.receivables().ApplyAllocation(tx, *rec); err != nil {
			return AllocationResult{}, domain.InternalError{Msg: "failed to update receivable", Err: err}
		}

		remaining = remaining.Sub(applied)
		result.Allocated = result.Allocated.Add(applied)
		result.Payments = append(result.Payments, payment)
	}
	result.Unallocated = remaining

	if err := tx.Commit(); err != nil {
		return AllocationResult{}, domain.InternalError{Msg: "failed to commit allocation", Err: err}
	}

	utils.LogEvent(s.RequestID, "payments", "allocate",
		fmt.Sprintf("client_id=%d allocated=%s unallocated=%s receivables=%d",
			in.ClientID, result.Allocated.StringFixed(2), result.Unallocated.StringFixed(2), len(result.Payments)))

	if s.NotificationSvc != nil && len(result.Payments) > 0 {
		// Best-effort receipt message; the allocation is already committed.
		_ = s.NotificationSvc.QueuePaymentReceipt(in.ClientID, result.Allocated, reference)
	}

	return result, nil
}

// ListPayments returns recorded payments for the list endpoints.
func (s PaymentService) ListPayments(clientID, receivableID int64, page, limit int) ([]models.Payment, error) {
	return s.payments().List(clientID, receivableID, page, limit)
}

// SumForBooking feeds the status deriver with the booking's paid total.
func (s PaymentService) SumForBooking(bookingID int64) (decimal.Decimal, error) {
	return s.payments().SumForBooking(bookingID)
}

func (s PaymentService) receivables() repositories.ReceivableRepository {
	if s.ReceivableRepo.DB != nil {
		return s.ReceivableRepo
	}
	return repositories.ReceivableRepository{DB: s.db()}
}

func (s PaymentService) payments() repositories.PaymentRepository {
	if s.PaymentRepo.DB != nil {
		return s.PaymentRepo
	}
	return repositories.PaymentRepository{DB: s.db()}
}

func (s PaymentService) clients() repositories.ClientRepository {
	if s.ClientRepo.DB != nil {
		return s.ClientRepo
	}
	return repositories.ClientRepository{DB: s.db()}
}
