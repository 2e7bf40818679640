package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boveda/internal/db"
	apperrors "boveda/internal/errors"
	"boveda/internal/repository"
)

type fakeBookingStore struct {
	windows     []repository.BusyWindow
	busyErr     error
	createErr   error
	busyCalls   int
	createCalls int
	created     *db.Booking
}

func (f *fakeBookingStore) BusyBetween(start, end time.Time) ([]repository.BusyWindow, error) {
	f.busyCalls++
	return f.windows, f.busyErr
}

func (f *fakeBookingStore) CreateBooking(b *db.Booking) error {
	f.createCalls++
	f.created = b
	return f.createErr
}

type fakeNotifier struct {
	confirmed []*db.Booking
}

func (f *fakeNotifier) BookingConfirmed(b *db.Booking) {
	f.confirmed = append(f.confirmed, b)
}

func newTestBookingService(store *fakeBookingStore, notifier *fakeNotifier) *BookingService {
	svc := NewBookingService(store, notifier, testZone)
	svc.now = func() time.Time { return testNow }
	return svc
}

func slotAt(day, hour int) (time.Time, time.Time) {
	start := time.Date(2024, 10, day, hour, 0, 0, 0, testZone)
	return start, start.Add(time.Hour)
}

func TestCreateBookingSuccess(t *testing.T) {
	store := &fakeBookingStore{}
	notifier := &fakeNotifier{}
	svc := newTestBookingService(store, notifier)

	start, end := slotAt(1, 18)
	booking, err := svc.CreateBooking("Ana", "ana@example.com", "consulta", start, end)
	require.NoError(t, err)

	require.Equal(t, "confirmed", booking.Status)
	require.Equal(t, "Ana", booking.UserName)
	require.Equal(t, "ana@example.com", booking.UserEmail)
	require.True(t, booking.StartTime.Equal(start))
	require.Len(t, booking.Code, 8)

	require.Equal(t, 1, store.createCalls)
	require.Len(t, notifier.confirmed, 1)
	require.Same(t, booking, notifier.confirmed[0])
}

func TestCreateBookingValidationChain(t *testing.T) {
	start, _ := slotAt(1, 18)

	tests := []struct {
		name       string
		start, end time.Time
		detail     string
	}{
		{
			name:   "end before start",
			start:  start,
			end:    start.Add(-time.Hour),
			detail: "end must be after start",
		},
		{
			name:   "ninety minute slot",
			start:  start,
			end:    start.Add(90 * time.Minute),
			detail: "slot must be 60 minutes",
		},
		{
			name:   "saturday",
			start:  time.Date(2024, 10, 5, 18, 0, 0, 0, testZone),
			end:    time.Date(2024, 10, 5, 19, 0, 0, 0, testZone),
			detail: "slot must be Monday-Friday",
		},
		{
			name:   "off grid hour",
			start:  time.Date(2024, 10, 2, 17, 0, 0, 0, testZone),
			end:    time.Date(2024, 10, 2, 18, 0, 0, 0, testZone),
			detail: "slot must start at 18:00, 19:00, or 20:00",
		},
		{
			name:   "off grid minutes",
			start:  time.Date(2024, 10, 2, 18, 30, 0, 0, testZone),
			end:    time.Date(2024, 10, 2, 19, 30, 0, 0, testZone),
			detail: "slot must start at 18:00, 19:00, or 20:00",
		},
		{
			name:   "in the past",
			start:  time.Date(2024, 9, 30, 18, 0, 0, 0, testZone),
			end:    time.Date(2024, 9, 30, 19, 0, 0, 0, testZone),
			detail: "slot must be in the future",
		},
		{
			name:   "next week",
			start:  time.Date(2024, 10, 8, 18, 0, 0, 0, testZone),
			end:    time.Date(2024, 10, 8, 19, 0, 0, 0, testZone),
			detail: "slot must be within the current week",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeBookingStore{}
			svc := newTestBookingService(store, &fakeNotifier{})

			_, err := svc.CreateBooking("Ana", "ana@example.com", "", tc.start, tc.end)

			var httpErr *apperrors.HTTPError
			require.ErrorAs(t, err, &httpErr)
			require.Equal(t, 400, httpErr.Code)
			require.Equal(t, tc.detail, httpErr.Detail)
			require.Zero(t, store.busyCalls, "invalid slots must not reach the store")
		})
	}
}

func TestCreateBookingRequiresEmail(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestBookingService(store, &fakeNotifier{})

	start, end := slotAt(1, 18)
	_, err := svc.CreateBooking("Ana", "", "", start, end)

	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "email is required", httpErr.Detail)
	require.Zero(t, store.busyCalls)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	start, end := slotAt(1, 18)
	store := &fakeBookingStore{
		windows: []repository.BusyWindow{{Start: start, End: end}},
	}
	notifier := &fakeNotifier{}
	svc := newTestBookingService(store, notifier)

	_, err := svc.CreateBooking("Ana", "ana@example.com", "", start, end)

	require.ErrorIs(t, err, ErrSlotTaken)
	require.Zero(t, store.createCalls)
	require.Empty(t, notifier.confirmed)
}

func TestCreateBookingAdjacentSlotsDoNotConflict(t *testing.T) {
	taken, takenEnd := slotAt(1, 18)
	store := &fakeBookingStore{
		windows: []repository.BusyWindow{{Start: taken, End: takenEnd}},
	}
	svc := newTestBookingService(store, &fakeNotifier{})

	// The 19:00 slot shares only the boundary instant with the busy window.
	start, end := slotAt(1, 19)
	_, err := svc.CreateBooking("Ana", "ana@example.com", "", start, end)
	require.NoError(t, err)
}

func TestCreateBookingStoreFailure(t *testing.T) {
	store := &fakeBookingStore{createErr: errors.New("insert failed")}
	notifier := &fakeNotifier{}
	svc := newTestBookingService(store, notifier)

	start, end := slotAt(1, 18)
	_, err := svc.CreateBooking("Ana", "ana@example.com", "", start, end)

	require.Error(t, err)
	require.Empty(t, notifier.confirmed, "no notification for unpersisted bookings")
}

func TestCreateBookingNormalizesTimezone(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestBookingService(store, &fakeNotifier{})

	// 21:00 UTC is 18:00 in the service zone; the grid check runs in local time.
	start := time.Date(2024, 10, 1, 21, 0, 0, 0, time.UTC)
	booking, err := svc.CreateBooking("Ana", "ana@example.com", "", start, start.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 18, booking.StartTime.Hour())
}
