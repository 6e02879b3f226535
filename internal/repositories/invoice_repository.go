package repositories

import (
	"database/sql"
	"fmt"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func (r InvoiceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts an invoice row.
func (r InvoiceRepository) Create(inv models.Invoice) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO invoices (invoice_number, booking_id, client_id, amount, issued_at, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		inv.InvoiceNumber,
		inv.BookingID,
		inv.ClientID,
		inv.Amount,
		inv.IssuedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID fetches an invoice by primary key.
func (r InvoiceRepository) GetByID(id int64) (models.Invoice, error) {
	if id <= 0 {
		return models.Invoice{}, fmt.Errorf("invalid invoice id")
	}
	var inv models.Invoice
	err := r.db().QueryRow(`
		SELECT id, invoice_number, booking_id, client_id, amount, issued_at, created_at
		FROM invoices WHERE id=? LIMIT 1`, id).Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.BookingID,
		&inv.ClientID,
		&inv.Amount,
		&inv.IssuedAt,
		&inv.CreatedAt,
	)
	if err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// List returns invoices newest-first, optionally scoped by client.
func (r InvoiceRepository) List(clientID int64, page, limit int) ([]models.Invoice, error) {
	query := `
		SELECT id, invoice_number, booking_id, client_id, amount, issued_at, created_at
		FROM invoices`
	args := []any{}
	if clientID > 0 {
		query += " WHERE client_id=?"
		args = append(args, clientID)
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

	out := []models.Invoice{}
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.InvoiceNumber,
			&inv.BookingID,
			&inv.ClientID,
			&inv.Amount,
			&inv.IssuedAt,
			&inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// CountForBooking returns how many invoices a booking already has, used
// for the per-booking sequence suffix in invoice numbers.
func (r InvoiceRepository) CountForBooking(bookingID int64) (int, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM invoices WHERE booking_id=?`, bookingID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
