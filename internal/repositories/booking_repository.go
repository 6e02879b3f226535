package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	intdb "github.com/dabouqi/tourism-transport-system-sub000/internal/db"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	"github.com/shopspring/decimal"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// BookingWithPaid pairs a booking row with its payment total so callers
// can derive the display status without a second round trip per row.
type BookingWithPaid struct {
	Booking models.Booking
	Paid    decimal.Decimal
}

const bookingSelect = `
	SELECT b.id,
	       b.client_id,
	       b.vehicle_id,
	       b.driver_id,
	       COALESCE(b.route_from,''),
	       COALESCE(b.route_to,''),
	       b.pickup_at,
	       b.fare,
	       b.status,
	       COALESCE(b.notes,''),
	       b.created_at,
	       COALESCE(SUM(p.amount), 0) AS paid_amount
	FROM bookings b
	LEFT JOIN receivables r ON r.booking_id = b.id
	LEFT JOIN payments p ON p.receivable_id = r.id`

func scanBookingWithPaid(rows *sql.Rows) (BookingWithPaid, error) {
	var (
		out       BookingWithPaid
		vehicleID sql.NullInt64
		driverID  sql.NullInt64
		status    string
	)
	if err := rows.Scan(
		&out.Booking.ID,
		&out.Booking.ClientID,
		&vehicleID,
		&driverID,
		&out.Booking.RouteFrom,
		&out.Booking.RouteTo,
		&out.Booking.PickupAt,
		&out.Booking.Fare,
		&status,
		&out.Booking.Notes,
		&out.Booking.CreatedAt,
		&out.Paid,
	); err != nil {
		return BookingWithPaid{}, err
	}
	if vehicleID.Valid {
		v := vehicleID.Int64
		out.Booking.VehicleID = &v
	}
	if driverID.Valid {
		d := driverID.Int64
		out.Booking.DriverID = &d
	}
	out.Booking.Status = models.BookingStatus(status)
	return out, nil
}

// ListWithPaid returns bookings newest-first with their payment totals.
func (r BookingRepository) ListWithPaid(clientID int64, status string, page, limit int) ([]BookingWithPaid, error) {
	where := []string{}
	args := []any{}
	if clientID > 0 {
		where = append(where, "b.client_id=?")
		args = append(args, clientID)
	}
	if s := strings.TrimSpace(status); s != "" {
		where = append(where, "b.status=?")
		args = append(args, s)
	}

	query := bookingSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY b.id ORDER BY b.id DESC"
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

	out := []BookingWithPaid{}
	for rows.Next() {
		b, err := scanBookingWithPaid(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetWithPaid fetches one booking with its payment total.
func (r BookingRepository) GetWithPaid(id int64) (BookingWithPaid, error) {
	if id <= 0 {
		return BookingWithPaid{}, fmt.Errorf("invalid booking id")
	}
	rows, err := r.db().Query(bookingSelect+` WHERE b.id=? GROUP BY b.id`, id)
	if err != nil {
		return BookingWithPaid{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return BookingWithPaid{}, err
		}
		return BookingWithPaid{}, sql.ErrNoRows
	}
	return scanBookingWithPaid(rows)
}

// Create inserts a booking with the stored lifecycle set to pending.
func (r BookingRepository) Create(b models.Booking) (int64, error) {
	var vehicleID any
	if b.VehicleID != nil {
		vehicleID = *b.VehicleID
	}
	var driverID any
	if b.DriverID != nil {
		driverID = *b.DriverID
	}
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(client_id, vehicle_id, driver_id, route_from, route_to, pickup_at, fare, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		b.ClientID,
		vehicleID,
		driverID,
		b.RouteFrom,
		b.RouteTo,
		b.PickupAt,
		b.Fare,
		string(models.BookingPending),
		intdb.NullIfEmpty(b.Notes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePatch applies key-presence updates; absent fields stay untouched.
func (r BookingRepository) UpdatePatch(id int64, upd models.BookingUpdate) error {
	sets := []string{}
	args := []any{}

	if upd.ClientID != nil {
		sets = append(sets, "client_id=?")
		args = append(args, *upd.ClientID)
	}
	if upd.VehicleID != nil {
		sets = append(sets, "vehicle_id=?")
		args = append(args, *upd.VehicleID)
	}
	if upd.DriverID != nil {
		sets = append(sets, "driver_id=?")
		args = append(args, *upd.DriverID)
	}
	if upd.RouteFrom != nil {
		sets = append(sets, "route_from=?")
		args = append(args, *upd.RouteFrom)
	}
	if upd.RouteTo != nil {
		sets = append(sets, "route_to=?")
		args = append(args, *upd.RouteTo)
	}
	if upd.PickupAt != nil {
		sets = append(sets, "pickup_at=?")
		args = append(args, *upd.PickupAt)
	}
	if upd.Fare != nil {
		sets = append(sets, "fare=?")
		args = append(args, *upd.Fare)
	}
	if upd.Notes != nil {
		sets = append(sets, "notes=?")
		args = append(args, *upd.Notes)
	}

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

// SetStatus writes the manually-set lifecycle field (cancel/restore).
func (r BookingRepository) SetStatus(id int64, status models.BookingStatus) (bool, error) {
	res, err := r.db().Exec(`UPDATE bookings SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes a booking row.
func (r BookingRepository) Delete(id int64) (bool, error) {
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
