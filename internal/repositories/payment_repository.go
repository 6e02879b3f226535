package repositories

import (
	"database/sql"
	"strings"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	intdb "github.com/dabouqi/tourism-transport-system-sub000/internal/db"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	"github.com/shopspring/decimal"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert writes one immutable payment row. Runs on the allocation
// transaction when q is a *sql.Tx.
func (r PaymentRepository) Insert(q Querier, p models.Payment) (int64, error) {
	if q == nil {
		q = r.db()
	}
	res, err := q.Exec(`
		INSERT INTO payments
			(receivable_id, client_id, amount, method, reference_number, notes, payment_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`,
		p.ReceivableID,
		p.ClientID,
		p.Amount,
		string(p.Method),
		intdb.NullIfEmpty(p.ReferenceNumber),
		intdb.NullIfEmpty(p.Notes),
		p.PaymentDate,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns payments newest-first, filtered by client and/or receivable.
func (r PaymentRepository) List(clientID, receivableID int64, page, limit int) ([]models.Payment, error) {
	where := []string{}
	args := []any{}
	if clientID > 0 {
		where = append(where, "client_id=?")
		args = append(args, clientID)
	}
	if receivableID > 0 {
		where = append(where, "receivable_id=?")
		args = append(args, receivableID)
	}

	query := `
		SELECT id, receivable_id, client_id, amount, method,
		       COALESCE(reference_number,''), COALESCE(notes,''),
		       payment_date, created_at
		FROM payments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var (
			p      models.Payment
			method string
		)
		if err := rows.Scan(
			&p.ID,
			&p.ReceivableID,
			&p.ClientID,
			&p.Amount,
			&method,
			&p.ReferenceNumber,
			&p.Notes,
			&p.PaymentDate,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Method = models.PaymentMethod(method)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SumForBooking totals payments applied to a booking through its
// receivables. Feeds the status deriver's paid input.
func (r PaymentRepository) SumForBooking(bookingID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN receivables r ON r.id = p.receivable_id
		WHERE r.booking_id = ?`, bookingID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumSince totals payments recorded on or after the cutoff date.
func (r PaymentRepository) SumSince(cutoff string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE payment_date >= ?`, cutoff).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
