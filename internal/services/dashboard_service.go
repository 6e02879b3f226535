package services

import (
	"database/sql"
	"time"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/repositories"

	"github.com/shopspring/decimal"
)

// DashboardService aggregates the numbers for the landing screen.
// Straight-line aggregation only; the booking counts reuse the status
// deriver so the dashboard agrees with every list page.
type DashboardService struct {
	BookingRepo    repositories.BookingRepository
	ReceivableRepo repositories.ReceivableRepository
	PaymentRepo    repositories.PaymentRepository
	DB             *sql.DB

	Now func() time.Time
}

type DashboardSummary struct {
	BookingsByStatus   map[models.BookingStatus]int `json:"bookings_by_status"`
	TotalOutstanding   decimal.Decimal              `json:"total_outstanding"`
	CollectedThisMonth decimal.Decimal              `json:"collected_this_month"`
}

func (s DashboardService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Summary computes the dashboard aggregates.
func (s DashboardService) Summary() (DashboardSummary, error) {
	now := s.now()

	rows, err := s.bookings().ListWithPaid(0, "", 0, 0)
	if err != nil {
		return DashboardSummary{}, domain.InternalError{Msg: "failed to aggregate bookings", Err: err}
	}
	byStatus := map[models.BookingStatus]int{}
	for _, row := range rows {
		byStatus[DeriveBookingStatus(row.Booking, row.Paid, now)]++
	}

	outstanding, err := s.receivables().OutstandingTotal(0)
	if err != nil {
		return DashboardSummary{}, domain.InternalError{Msg: "failed to total receivables", Err: err}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	collected, err := s.payments().SumSince(monthStart.Format("2006-01-02"))
	if err != nil {
		return DashboardSummary{}, domain.InternalError{Msg: "failed to total payments", Err: err}
	}

	return DashboardSummary{
		BookingsByStatus:   byStatus,
		TotalOutstanding:   outstanding,
		CollectedThisMonth: collected,
	}, nil
}

func (s DashboardService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s DashboardService) receivables() repositories.ReceivableRepository {
	if s.ReceivableRepo.DB != nil {
		return s.ReceivableRepo
	}
	return repositories.ReceivableRepository{DB: s.db()}
}

func (s DashboardService) payments() repositories.PaymentRepository {
	if s.PaymentRepo.DB != nil {
		return s.PaymentRepo
	}
	return repositories.PaymentRepository{DB: s.db()}
}
