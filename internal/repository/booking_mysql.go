package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// SQLBookingRepo implements BookingStore on the bookings table.  Seats are
// stored as a JSON array column.
type SQLBookingRepo struct {
	db *sql.DB
}

func NewSQLBookingRepo(db *sql.DB) *SQLBookingRepo {
	return &SQLBookingRepo{db: db}
}

func (r *SQLBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = time.Now().UTC()
	}
	seats, err := encodeSeats(b.Seats)
	if err != nil {
		return err
	}
	const q = `INSERT INTO bookings
		(id, movie_title, show_time, seats, total_price, customer_name, customer_phone, customer_email, booking_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q, b.ID, b.MovieTitle, b.ShowTime, seats, b.TotalPrice,
		b.CustomerName, b.CustomerPhone, b.CustomerEmail, b.BookingDate)
	return mapMySQLError(err)
}

func (r *SQLBookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT id, movie_title, show_time, seats, total_price, customer_name, customer_phone, customer_email, booking_date
		FROM bookings ORDER BY booking_date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		var (
			b     model.Booking
			seats []byte
		)
		if err := rows.Scan(&b.ID, &b.MovieTitle, &b.ShowTime, &seats, &b.TotalPrice,
			&b.CustomerName, &b.CustomerPhone, &b.CustomerEmail, &b.BookingDate); err != nil {
			return nil, err
		}
		if b.Seats, err = decodeSeats(seats); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLBookingRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func encodeSeats(seats []string) (string, error) {
	if seats == nil {
		seats = []string{}
	}
	raw, err := json.Marshal(seats)
	return string(raw), err
}

func decodeSeats(raw []byte) ([]string, error) {
	seats := []string{}
	if len(raw) == 0 {
		return seats, nil
	}
	err := json.Unmarshal(raw, &seats)
	return seats, err
}
