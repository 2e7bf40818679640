package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boveda/internal/db"
	"boveda/internal/entities"
	"boveda/internal/repository"
	"boveda/internal/service"
)

type stubStore struct{}

func (stubStore) BusyBetween(start, end time.Time) ([]repository.BusyWindow, error) {
	return nil, nil
}

func (stubStore) CreateBooking(b *db.Booking) error { return nil }

type stubNotifier struct{}

func (stubNotifier) BookingConfirmed(b *db.Booking) {}

func newTestHandler() *CalendarHandler {
	availability := service.NewAvailabilityService(stubStore{}, time.UTC)
	bookings := service.NewBookingService(stubStore{}, stubNotifier{}, time.UTC)
	return NewCalendarHandler(availability, bookings)
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestGetAvailabilityRejectsNonIntegerDays(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.GetAvailability(rec, httptest.NewRequest(http.MethodGet, "/calendar/availability?days=abc", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "days must be an integer", detailOf(t, rec))
}

func TestGetAvailabilityResponseShape(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.GetAvailability(rec, httptest.NewRequest(http.MethodGet, "/calendar/availability?days=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		TZ    string          `json:"tz"`
		Range struct{ Start, End string }
		Slots []json.RawMessage `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "UTC", body.TZ)
	require.NotNil(t, body.Slots, "slots must encode as [] rather than null")
}

func TestCreateBookingRejectsInvalidBody(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.CreateBooking(rec, httptest.NewRequest(http.MethodPost, "/calendar/book", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid request body", detailOf(t, rec))
}

func TestCreateBookingRejectsBadTimestamps(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.CreateBooking(rec, httptest.NewRequest(http.MethodPost, "/calendar/book",
		strings.NewReader(`{"start":"mañana","end":"2024-10-01T19:00:00-03:00","email":"a@b.com"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "start must be an ISO-8601 timestamp", detailOf(t, rec))

	rec = httptest.NewRecorder()
	h.CreateBooking(rec, httptest.NewRequest(http.MethodPost, "/calendar/book",
		strings.NewReader(`{"start":"2024-10-01T18:00:00-03:00","end":"pasado","email":"a@b.com"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "end must be an ISO-8601 timestamp", detailOf(t, rec))
}

func TestCreateBookingMapsValidationErrors(t *testing.T) {
	h := newTestHandler()

	// 2020-10-05 is a Monday with a grid-aligned hour, so the past check is
	// the one that fires.
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, httptest.NewRequest(http.MethodPost, "/calendar/book",
		strings.NewReader(`{"start":"2020-10-05T18:00:00Z","end":"2020-10-05T19:00:00Z","name":"Ana","email":"a@b.com"}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "slot must be in the future", detailOf(t, rec))
}

type fakeCreator struct {
	booking *db.Booking
	err     error

	calls       int
	name, email string
	notes       string
	start, end  time.Time
}

func (f *fakeCreator) CreateBooking(name, email, notes string, start, end time.Time) (*db.Booking, error) {
	f.calls++
	f.name, f.email, f.notes = name, email, notes
	f.start, f.end = start, end
	return f.booking, f.err
}

func TestCreateBookingEncodesBookingResponse(t *testing.T) {
	creator := &fakeCreator{booking: &db.Booking{Code: "AB12CD34"}}
	h := &CalendarHandler{Bookings: creator}

	rec := httptest.NewRecorder()
	h.CreateBooking(rec, httptest.NewRequest(http.MethodPost, "/calendar/book",
		strings.NewReader(`{"start":"2024-10-01T18:00:00-03:00","end":"2024-10-01T19:00:00-03:00","name":"Ana","email":"a@b.com","notes":"consulta"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entities.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "booked", resp.Status)
	require.Equal(t, "AB12CD34", resp.Code)
	require.Equal(t, entities.EmailStatusQueued, resp.EmailStatus)

	require.Equal(t, 1, creator.calls)
	require.Equal(t, "Ana", creator.name)
	require.Equal(t, "a@b.com", creator.email)
	require.Equal(t, "consulta", creator.notes)
	require.True(t, creator.end.Equal(creator.start.Add(time.Hour)))
}

func TestCreateBookingMapsSlotTaken(t *testing.T) {
	h := &CalendarHandler{Bookings: &fakeCreator{err: service.ErrSlotTaken}}

	rec := httptest.NewRecorder()
	h.CreateBooking(rec, httptest.NewRequest(http.MethodPost, "/calendar/book",
		strings.NewReader(`{"start":"2024-10-01T18:00:00-03:00","end":"2024-10-01T19:00:00-03:00","email":"a@b.com"}`)))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "slot_taken", detailOf(t, rec))
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
