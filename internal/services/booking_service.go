package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/repositories"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/shopspring/decimal"
)

// BookingService wraps booking reads with status derivation and owns
// the create/cancel/restore flows.
type BookingService struct {
	BookingRepo     repositories.BookingRepository
	ReceivableRepo  repositories.ReceivableRepository
	ClientRepo      repositories.ClientRepository
	NotificationSvc *NotificationService
	DB              *sql.DB
	RequestID       string

	Now func() time.Time
}

// BookingView is what list/detail endpoints return: the stored row plus
// the derived status and the payment total it was derived from.
type BookingView struct {
	models.Booking
	DerivedStatus models.BookingStatus `json:"derived_status"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
}

// CreateBookingInput carries the create payload after handler parsing.
type CreateBookingInput struct {
	Booking          models.Booking
	CreateReceivable bool
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns bookings with derived statuses attached.
func (s BookingService) List(clientID int64, status string, page, limit int) ([]BookingView, error) {
	rows, err := s.bookings().ListWithPaid(clientID, status, page, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list bookings", Err: err}
	}
	now := s.now()
	out := make([]BookingView, 0, len(rows))
	for _, row := range rows {
		out = append(out, BookingView{
			Booking:       row.Booking,
			DerivedStatus: DeriveBookingStatus(row.Booking, row.Paid, now),
			PaidAmount:    row.Paid,
		})
	}
	return out, nil
}

// Get returns one booking with its derived status.
func (s BookingService) Get(id int64) (BookingView, error) {
	row, err := s.bookings().GetWithPaid(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingView{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return BookingView{}, domain.InternalError{Msg: "failed to fetch booking", Err: err}
	}
	return BookingView{
		Booking:       row.Booking,
		DerivedStatus: DeriveBookingStatus(row.Booking, row.Paid, s.now()),
		PaidAmount:    row.Paid,
	}, nil
}

// Create stores the booking, optionally opens a receivable for the fare
// (due on the pickup date) and queues a confirmation message.
func (s BookingService) Create(in CreateBookingInput) (BookingView, error) {
	b := in.Booking
	if b.ClientID <= 0 {
		return BookingView{}, domain.ValidationError{Field: "client_id", Msg: "invalid client id"}
	}
	if b.Fare.IsNegative() {
		return BookingView{}, domain.ValidationError{Field: "fare", Msg: "fare must not be negative"}
	}
	if b.PickupAt.IsZero() {
		return BookingView{}, domain.ValidationError{Field: "pickup_at", Msg: "pickup time is required"}
	}

	client, err := s.clients().GetByID(b.ClientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingView{}, domain.NotFoundError{Resource: "client", Err: err}
		}
		return BookingView{}, domain.InternalError{Msg: "client lookup failed", Err: err}
	}

	id, err := s.bookings().Create(b)
	if err != nil {
		return BookingView{}, domain.InternalError{Msg: "failed to create booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "bookings", "create", fmt.Sprintf("booking_id=%d client_id=%d", id, b.ClientID))

	if in.CreateReceivable && b.Fare.IsPositive() {
		due := b.PickupAt
		if _, err := s.receivables().Create(models.Receivable{
			ClientID:    b.ClientID,
			BookingID:   &id,
			Amount:      b.Fare,
			DueDate:     &due,
			Description: fmt.Sprintf("Booking #%d %s - %s", id, b.RouteFrom, b.RouteTo),
		}); err != nil {
			return BookingView{}, domain.InternalError{Msg: "failed to create receivable", Err: err}
		}
	}

	if s.NotificationSvc != nil {
		b.ID = id
		// Queue failure must not fail the booking.
		_ = s.NotificationSvc.QueueBookingConfirmation(b, client)
	}

	return s.Get(id)
}

// Update applies a key-presence patch to the booking row.
func (s BookingService) Update(id int64, upd models.BookingUpdate) (BookingView, error) {
	if _, err := s.Get(id); err != nil {
		return BookingView{}, err
	}
	if upd.Fare != nil && upd.Fare.IsNegative() {
		return BookingView{}, domain.ValidationError{Field: "fare", Msg: "fare must not be negative"}
	}
	if err := s.bookings().UpdatePatch(id, upd); err != nil {
		return BookingView{}, domain.InternalError{Msg: "failed to update booking", Err: err}
	}
	return s.Get(id)
}

// Cancel sets the stored lifecycle to cancelled. Cancellation is sticky:
// the deriver reports cancelled from then on regardless of payments.
func (s BookingService) Cancel(id int64) (BookingView, error) {
	view, err := s.Get(id)
	if err != nil {
		return BookingView{}, err
	}
	if view.Status == models.BookingCancelled {
		return view, nil
	}
	if _, err := s.bookings().SetStatus(id, models.BookingCancelled); err != nil {
		return BookingView{}, domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "bookings", "cancel", fmt.Sprintf("booking_id=%d", id))
	return s.Get(id)
}

// Restore moves a cancelled booking back to pending.
func (s BookingService) Restore(id int64) (BookingView, error) {
	view, err := s.Get(id)
	if err != nil {
		return BookingView{}, err
	}
	if view.Status != models.BookingCancelled {
		return BookingView{}, domain.ConflictError{Resource: "booking", Msg: "only cancelled bookings can be restored"}
	}
	if _, err := s.bookings().SetStatus(id, models.BookingPending); err != nil {
		return BookingView{}, domain.InternalError{Msg: "failed to restore booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "bookings", "restore", fmt.Sprintf("booking_id=%d", id))
	return s.Get(id)
}

// Delete removes a booking.
func (s BookingService) Delete(id int64) error {
	ok, err := s.bookings().Delete(id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete booking", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) receivables() repositories.ReceivableRepository {
	if s.ReceivableRepo.DB != nil {
		return s.ReceivableRepo
	}
	return repositories.ReceivableRepository{DB: s.db()}
}

func (s BookingService) clients() repositories.ClientRepository {
	if s.ClientRepo.DB != nil {
		return s.ClientRepo
	}
	return repositories.ClientRepository{DB: s.db()}
}
