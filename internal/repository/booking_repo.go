package repository

import (
	"database/sql"
	"fmt"
	"time"

	"boveda/internal/db"
	"boveda/internal/entities"
)

// BusyWindow is an occupied interval on the operator's calendar.
type BusyWindow struct {
	Start time.Time
	End   time.Time
}

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// BusyBetween returns the confirmed bookings overlapping [start, end).
func (r *BookingRepository) BusyBetween(start, end time.Time) ([]BusyWindow, error) {
	query := `
		SELECT start_time, end_time
		FROM bookings
		WHERE status = 'confirmed'
		  AND start_time < $2
		  AND end_time > $1
		ORDER BY start_time`

	rows, err := r.DB.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying busy windows: %w", err)
	}
	defer rows.Close()

	var busy []BusyWindow
	for rows.Next() {
		var w BusyWindow
		if err := rows.Scan(&w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("error scanning busy window: %w", err)
		}
		busy = append(busy, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating busy windows: %w", err)
	}
	return busy, nil
}

func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, user_name, user_email, notes, status, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.Code,
		b.UserName,
		b.UserEmail,
		b.Notes,
		b.Status,
		b.StartTime,
		b.EndTime,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// ListBookings returns bookings for the admin panel, optionally filtered by
// status and by calendar date (YYYY-MM-DD in the reporting timezone).
func (r *BookingRepository) ListBookings(date, status string) ([]entities.BookingListItem, error) {
	query := `
		SELECT id, code, user_name, user_email, notes, status, start_time, end_time, created_at
		FROM bookings
		WHERE ($1 = '' OR to_char(start_time, 'YYYY-MM-DD') = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY start_time DESC`

	rows, err := r.DB.Query(query, date, status)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var items []entities.BookingListItem
	for rows.Next() {
		var it entities.BookingListItem
		if err := rows.Scan(&it.ID, &it.Code, &it.UserName, &it.UserEmail, &it.Notes, &it.Status, &it.StartTime, &it.EndTime, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating bookings: %w", err)
	}
	return items, nil
}

// CancelBooking frees the slot by marking the booking canceled.
func (r *BookingRepository) CancelBooking(id int) error {
	query := `UPDATE bookings SET status = 'canceled', updated_at = NOW() WHERE id = $1`
	result, err := r.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("error canceling booking %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
