package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	intdb "github.com/dabouqi/tourism-transport-system-sub000/internal/db"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	"github.com/shopspring/decimal"
)

type ReceivableRepository struct {
	DB *sql.DB
}

func (r ReceivableRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const receivableColumns = `
	id,
	client_id,
	booking_id,
	amount,
	paid_amount,
	remaining_amount,
	due_date,
	status,
	COALESCE(description,''),
	created_at`

func scanReceivable(row interface{ Scan(...any) error }) (models.Receivable, error) {
	var (
		rec       models.Receivable
		bookingID sql.NullInt64
		dueDate   sql.NullTime
		status    string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.ClientID,
		&bookingID,
		&rec.Amount,
		&rec.PaidAmount,
		&rec.RemainingAmount,
		&dueDate,
		&status,
		&rec.Description,
		&rec.CreatedAt,
	); err != nil {
		return models.Receivable{}, err
	}
	if bookingID.Valid {
		id := bookingID.Int64
		rec.BookingID = &id
	}
	if dueDate.Valid {
		d := dueDate.Time
		rec.DueDate = &d
	}
	rec.Status = models.ReceivableStatus(status)
	return rec, nil
}

// GetByID fetches a receivable by primary key.
func (r ReceivableRepository) GetByID(id int64) (models.Receivable, error) {
	if id <= 0 {
		return models.Receivable{}, fmt.Errorf("invalid receivable id")
	}
	row := r.db().QueryRow(`SELECT `+receivableColumns+` FROM receivables WHERE id=? LIMIT 1`, id)
	return scanReceivable(row)
}

// List returns receivables oldest-first, optionally filtered by client
// and status.
func (r ReceivableRepository) List(clientID int64, status string, page, limit int) ([]models.Receivable, error) {
	where := []string{}
	args := []any{}
	if clientID > 0 {
		where = append(where, "client_id=?")
		args = append(args, clientID)
	}
	if s := strings.TrimSpace(status); s != "" {
		where = append(where, "status=?")
		args = append(args, s)
	}

	query := `SELECT ` + receivableColumns + ` FROM receivables`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY COALESCE(due_date, created_at) ASC, id ASC"
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

	out := []models.Receivable{}
	for rows.Next() {
		rec, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListOutstandingByClient returns the allocation candidate set: pending
// and partial receivables for the client, oldest-first. The order is a
// stable total order (due date when present, creation time otherwise,
// id as tiebreak). With forUpdate the rows are locked for the duration
// of the surrounding transaction.
func (r ReceivableRepository) ListOutstandingByClient(q Querier, clientID int64) ([]models.Receivable, error) {
	return r.listOutstanding(q, clientID, false)
}

func (r ReceivableRepository) ListOutstandingByClientForUpdate(tx *sql.Tx, clientID int64) ([]models.Receivable, error) {
	return r.listOutstanding(tx, clientID, true)
}

func (r ReceivableRepository) listOutstanding(q Querier, clientID int64, forUpdate bool) ([]models.Receivable, error) {
	if q == nil {
		q = r.db()
	}
	query := `SELECT ` + receivableColumns + `
		FROM receivables
		WHERE client_id=? AND status IN ('pending','partial')
		ORDER BY COALESCE(due_date, created_at) ASC, id ASC`
	if forUpdate {
		query += " FOR UPDATE"
	}

	rows, err := q.Query(query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Receivable{}
	for rows.Next() {
		rec, err := scanReceivable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create inserts a new receivable with remaining == amount.
func (r ReceivableRepository) Create(rec models.Receivable) (int64, error) {
	var bookingID any
	if rec.BookingID != nil {
		bookingID = *rec.BookingID
	}
	var dueDate any
	if rec.DueDate != nil {
		dueDate = rec.DueDate.Format("2006-01-02")
	}
	res, err := r.db().Exec(`
		INSERT INTO receivables
			(client_id, booking_id, amount, paid_amount, remaining_amount, due_date, status, description, created_at)
		VALUES (?, ?, ?, 0, ?, ?, ?, ?, NOW())`,
		rec.ClientID,
		bookingID,
		rec.Amount,
		rec.Amount,
		dueDate,
		string(models.ReceivablePending),
		intdb.NullIfEmpty(rec.Description),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ApplyAllocation persists one allocation step: new paid/remaining
// amounts and the recomputed status.
func (r ReceivableRepository) ApplyAllocation(q Querier, rec models.Receivable) error {
	if q == nil {
		q = r.db()
	}
	_, err := q.Exec(`
		UPDATE receivables
		SET paid_amount=?, remaining_amount=?, status=?
		WHERE id=?`,
		rec.PaidAmount,
		rec.RemainingAmount,
		string(rec.Status),
		rec.ID,
	)
	return err
}

// Cancel marks an untouched receivable cancelled. Rows with any paid
// amount are refused so payment history never points at a cancelled row.
func (r ReceivableRepository) Cancel(id int64) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE receivables
		SET status=?
		WHERE id=? AND paid_amount=0 AND status IN ('pending','overdue')`,
		string(models.ReceivableCancelled), id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkOverdue flips pending/partial receivables whose due date has
// passed. Run by the sweep endpoint, never by the allocator.
func (r ReceivableRepository) MarkOverdue(now time.Time) (int64, error) {
	res, err := r.db().Exec(`
		UPDATE receivables
		SET status=?
		WHERE status IN ('pending','partial')
		  AND due_date IS NOT NULL
		  AND due_date < ?`,
		string(models.ReceivableOverdue),
		now.Format("2006-01-02"),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// OutstandingTotal sums remaining amounts over open receivables,
// optionally scoped to one client.
func (r ReceivableRepository) OutstandingTotal(clientID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(remaining_amount), 0)
		FROM receivables
		WHERE status IN ('pending','partial','overdue')`
	args := []any{}
	if clientID > 0 {
		query += " AND client_id=?"
		args = append(args, clientID)
	}
	var total decimal.Decimal
	if err := r.db().QueryRow(query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
