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
)

// ReceivableService owns receivable creation and the lifecycle actions
// the allocator never takes (cancel, overdue sweep).
type ReceivableService struct {
	ReceivableRepo repositories.ReceivableRepository
	ClientRepo     repositories.ClientRepository
	DB             *sql.DB
	RequestID      string

	Now func() time.Time
}

func (s ReceivableService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReceivableService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns receivables oldest-first with optional filters.
func (s ReceivableService) List(clientID int64, status string, page, limit int) ([]models.Receivable, error) {
	if st := status; st != "" && !models.ReceivableStatus(st).IsValid() {
		return nil, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", st)}
	}
	out, err := s.receivables().List(clientID, status, page, limit)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list receivables", Err: err}
	}
	return out, nil
}

// ListOutstanding exposes the allocator's candidate query read-only.
func (s ReceivableService) ListOutstanding(clientID int64) ([]models.Receivable, error) {
	if clientID <= 0 {
		return nil, domain.ValidationError{Field: "client_id", Msg: "invalid client id"}
	}
	out, err := s.receivables().ListOutstandingByClient(nil, clientID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list outstanding receivables", Err: err}
	}
	return out, nil
}

// Create opens a manual receivable (not tied to a booking unless the
// caller links one).
func (s ReceivableService) Create(rec models.Receivable) (models.Receivable, error) {
	if rec.ClientID <= 0 {
		return models.Receivable{}, domain.ValidationError{Field: "client_id", Msg: "invalid client id"}
	}
	if !rec.Amount.IsPositive() {
		return models.Receivable{}, domain.InvalidAmountError{Amount: rec.Amount.String()}
	}

	ok, err := s.clients().Exists(nil, rec.ClientID)
	if err != nil {
		return models.Receivable{}, domain.InternalError{Msg: "client lookup failed", Err: err}
	}
	if !ok {
		return models.Receivable{}, domain.NotFoundError{Resource: "client"}
	}

	id, err := s.receivables().Create(rec)
	if err != nil {
		return models.Receivable{}, domain.InternalError{Msg: "failed to create receivable", Err: err}
	}
	utils.LogEvent(s.RequestID, "receivables", "create",
		fmt.Sprintf("receivable_id=%d client_id=%d amount=%s", id, rec.ClientID, rec.Amount.StringFixed(2)))
	return s.Get(id)
}

// Get fetches one receivable.
func (s ReceivableService) Get(id int64) (models.Receivable, error) {
	rec, err := s.receivables().GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Receivable{}, domain.NotFoundError{Resource: "receivable", Err: err}
		}
		return models.Receivable{}, domain.InternalError{Msg: "failed to fetch receivable", Err: err}
	}
	return rec, nil
}

// Cancel marks an untouched receivable cancelled. Receivables with any
// payment history are refused.
func (s ReceivableService) Cancel(id int64) (models.Receivable, error) {
	rec, err := s.Get(id)
	if err != nil {
		return models.Receivable{}, err
	}
	if rec.Status == models.ReceivableCancelled {
		return rec, nil
	}
	ok, err := s.receivables().Cancel(id)
	if err != nil {
		return models.Receivable{}, domain.InternalError{Msg: "failed to cancel receivable", Err: err}
	}
	if !ok {
		return models.Receivable{}, domain.ConflictError{Resource: "receivable", Msg: "already has payments applied"}
	}
	utils.LogEvent(s.RequestID, "receivables", "cancel", fmt.Sprintf("receivable_id=%d", id))
	return s.Get(id)
}

// MarkOverdue runs the sweep that flips past-due open receivables to
// overdue. It is the external collaborator from the allocator's point
// of view; the allocator itself never sets this state.
func (s ReceivableService) MarkOverdue() (int64, error) {
	n, err := s.receivables().MarkOverdue(s.now())
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to mark overdue receivables", Err: err}
	}
	utils.LogEvent(s.RequestID, "receivables", "mark_overdue", fmt.Sprintf("updated=%d", n))
	return n, nil
}

func (s ReceivableService) receivables() repositories.ReceivableRepository {
	if s.ReceivableRepo.DB != nil {
		return s.ReceivableRepo
	}
	return repositories.ReceivableRepository{DB: s.db()}
}

func (s ReceivableService) clients() repositories.ClientRepository {
	if s.ClientRepo.DB != nil {
		return s.ClientRepo
	}
	return repositories.ClientRepository{DB: s.db()}
}
