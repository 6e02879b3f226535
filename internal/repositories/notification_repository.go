package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	intdb "github.com/dabouqi/tourism-transport-system-sub000/internal/db"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureTable creates the outbox table on first use. The table is owned
// by this service alone, so bootstrapping it here keeps deploys simple.
func (r NotificationRepository) EnsureTable() error {
	db := r.db()
	if db == nil {
		return errors.New("db not connected")
	}
	if intdb.HasTable(db, "notifications") {
		return nil
	}
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS notifications (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			channel VARCHAR(20) NOT NULL DEFAULT 'whatsapp',
			recipient_phone VARCHAR(32) NOT NULL,
			body TEXT NOT NULL,
			dedup_key VARCHAR(64) NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'queued',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_notifications_dedup (dedup_key)
		)`)
	return err
}

// Insert queues one outbox row. A duplicate dedup key means the message
// was already queued; that is reported as ok=false, not as an error.
func (r NotificationRepository) Insert(n models.Notification) (int64, bool, error) {
	if err := r.EnsureTable(); err != nil {
		return 0, false, err
	}
	if n.DedupKey != "" {
		var existing int64
		err := r.db().QueryRow(`SELECT id FROM notifications WHERE dedup_key=? LIMIT 1`, n.DedupKey).Scan(&existing)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, false, err
		}
	}
	res, err := r.db().Exec(`
		INSERT INTO notifications (channel, recipient_phone, body, dedup_key, status, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		n.Channel,
		n.RecipientPhone,
		n.Body,
		intdb.NullIfEmpty(n.DedupKey),
		string(models.NotificationQueued),
	)
	if err != nil {
		return 0, false, err
	}
	id, err := res.LastInsertId()
	return id, err == nil, err
}

// List returns outbox rows newest-first, optionally filtered by status.
func (r NotificationRepository) List(status string, page, limit int) ([]models.Notification, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, err
	}
	query := `
		SELECT id, channel, recipient_phone, body, COALESCE(dedup_key,''), status, created_at
		FROM notifications`
	args := []any{}
	if s := strings.TrimSpace(status); s != "" {
		query += " WHERE status=?"
		args = append(args, s)
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

	out := []models.Notification{}
	for rows.Next() {
		var (
			n      models.Notification
			status string
		)
		if err := rows.Scan(&n.ID, &n.Channel, &n.RecipientPhone, &n.Body, &n.DedupKey, &status, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Status = models.NotificationStatus(status)
		out = append(out, n)
	}
	return out, rows.Err()
}

// SetStatus moves an outbox row to sent/failed on behalf of the
// delivery worker.
func (r NotificationRepository) SetStatus(id int64, status models.NotificationStatus) (bool, error) {
	res, err := r.db().Exec(`UPDATE notifications SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
