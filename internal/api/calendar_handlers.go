package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"boveda/internal/db"
	"boveda/internal/entities"
	apperrors "boveda/internal/errors"
	"boveda/internal/service"
)

// BookingCreator is the booking side of the gateway; *service.BookingService
// implements it.
type BookingCreator interface {
	CreateBooking(name, email, notes string, start, end time.Time) (*db.Booking, error)
}

type CalendarHandler struct {
	Availability *service.AvailabilityService
	Bookings     BookingCreator
}

func NewCalendarHandler(availability *service.AvailabilityService, bookings BookingCreator) *CalendarHandler {
	return &CalendarHandler{Availability: availability, Bookings: bookings}
}

func (h *CalendarHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	days := service.DefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondDetail(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = parsed
	}

	resp, err := h.Availability.Availability(days)
	if err != nil {
		respondDetail(w, http.StatusInternalServerError, "error checking availability")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *CalendarHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := parseRFC3339(req.Start)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "start must be an ISO-8601 timestamp")
		return
	}
	end, err := parseRFC3339(req.End)
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "end must be an ISO-8601 timestamp")
		return
	}

	booking, err := h.Bookings.CreateBooking(req.Name, req.Email, req.Notes, start, end)
	if err != nil {
		var httpErr *apperrors.HTTPError
		switch {
		case errors.As(err, &httpErr):
			respondDetail(w, httpErr.Code, httpErr.Detail)
		case errors.Is(err, service.ErrSlotTaken):
			respondDetail(w, http.StatusConflict, "slot_taken")
		default:
			respondDetail(w, http.StatusInternalServerError, "error creating booking")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.BookingResponse{
		Status:      "booked",
		Code:        booking.Code,
		EmailStatus: entities.EmailStatusQueued,
	})
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func parseRFC3339(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

func respondDetail(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
