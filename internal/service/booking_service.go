package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"boveda/internal/db"
	apperrors "boveda/internal/errors"
	"boveda/internal/repository"
)

// ErrSlotTaken means the requested window overlaps an existing booking; the
// API maps it to 409 so the widget can offer another slot.
var ErrSlotTaken = errors.New("slot_taken")

const statusConfirmed = "confirmed"

// BookingStore persists bookings and reports occupied windows.
type BookingStore interface {
	BusyBetween(start, end time.Time) ([]repository.BusyWindow, error)
	CreateBooking(b *db.Booking) error
}

// BookingNotifier delivers the confirmation email and the operator alert.
type BookingNotifier interface {
	BookingConfirmed(b *db.Booking)
}

type BookingService struct {
	store    BookingStore
	notifier BookingNotifier
	loc      *time.Location
	now      func() time.Time
}

func NewBookingService(store BookingStore, notifier BookingNotifier, loc *time.Location) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
	}
}

// CreateBooking validates the requested slot against the fixed evening
// grid, rejects conflicts, persists the booking and fires notifications.
// The store is the single authority on conflicts: a double submit of the
// same slot loses the race here and gets ErrSlotTaken.
func (s *BookingService) CreateBooking(name, email, notes string, start, end time.Time) (*db.Booking, error) {
	now := s.now().In(s.loc)
	weekStart, weekEnd := weekBounds(now)

	start = start.In(s.loc)
	end = end.In(s.loc)

	if err := validateSlot(start, end, now, weekStart, weekEnd); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, apperrors.ErrBadRequest("email is required")
	}

	busy, err := s.store.BusyBetween(start, end)
	if err != nil {
		log.Printf("Error from BusyBetween: %v", err)
		return nil, fmt.Errorf("internal error checking slot: %w", err)
	}
	if overlapsAny(start, end, busy) {
		return nil, ErrSlotTaken
	}

	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)
	booking := &db.Booking{
		Code:      code,
		UserName:  name,
		UserEmail: email,
		Notes:     notes,
		Status:    statusConfirmed,
		StartTime: start,
		EndTime:   end,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateBooking(booking); err != nil {
		log.Printf("Error creating booking in repository: %v", err)
		return nil, err
	}

	s.notifier.BookingConfirmed(booking)
	return booking, nil
}

func validateSlot(start, end, now, weekStart, weekEnd time.Time) error {
	if !end.After(start) {
		return apperrors.ErrBadRequest("end must be after start")
	}
	if end.Sub(start) != time.Hour {
		return apperrors.ErrBadRequest("slot must be 60 minutes")
	}
	if !isBookableWeekday(start.Weekday()) {
		return apperrors.ErrBadRequest("slot must be Monday-Friday")
	}
	if !isBookableStartHour(start) {
		return apperrors.ErrBadRequest("slot must start at 18:00, 19:00, or 20:00")
	}
	if start.Before(now) {
		return apperrors.ErrBadRequest("slot must be in the future")
	}
	if start.Before(weekStart) || !start.Before(weekEnd) {
		return apperrors.ErrBadRequest("slot must be within the current week")
	}
	return nil
}

func isBookableStartHour(start time.Time) bool {
	if start.Minute() != 0 {
		return false
	}
	for _, hour := range slotStartHours {
		if start.Hour() == hour {
			return true
		}
	}
	return false
}
