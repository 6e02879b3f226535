package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
)

type ClientRepository struct {
	DB *sql.DB
}

func (r ClientRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Exists checks the client row on the given querier, so the allocator
// can validate inside its transaction.
func (r ClientRepository) Exists(q Querier, id int64) (bool, error) {
	if q == nil {
		q = r.db()
	}
	var found int64
	err := q.QueryRow(`SELECT id FROM clients WHERE id=? LIMIT 1`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetByID fetches a client by primary key.
func (r ClientRepository) GetByID(id int64) (models.Client, error) {
	if id <= 0 {
		return models.Client{}, fmt.Errorf("invalid client id")
	}
	var c models.Client
	err := r.db().QueryRow(`
		SELECT id, name, COALESCE(phone,''), COALESCE(email,''), COALESCE(address,''), created_at
		FROM clients WHERE id=? LIMIT 1`, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt,
	)
	if err != nil {
		return models.Client{}, err
	}
	return c, nil
}

// List searches clients by name or phone, newest-first.
func (r ClientRepository) List(q string, page, limit int) ([]models.Client, error) {
	query := `
		SELECT id, name, COALESCE(phone,''), COALESCE(email,''), COALESCE(address,''), created_at
		FROM clients`
	args := []any{}
	if s := strings.TrimSpace(q); s != "" {
		query += " WHERE (name LIKE ? OR phone LIKE ?)"
		like := "%" + s + "%"
		args = append(args, like, like)
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

	out := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a client.
func (r ClientRepository) Create(c models.Client) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO clients (name, phone, email, address, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		c.Name, c.Phone, c.Email, c.Address,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites client master data.
func (r ClientRepository) Update(c models.Client) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE clients SET name=?, phone=?, email=?, address=? WHERE id=?`,
		c.Name, c.Phone, c.Email, c.Address, c.ID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a client row.
func (r ClientRepository) Delete(id int64) (bool, error) {
	res, err := r.db().Exec(`DELETE FROM clients WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
