package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boveda/internal/entities"
)

// BookingAdminStore is the admin view over bookings;
// *repository.BookingRepository implements it.
type BookingAdminStore interface {
	ListBookings(date, status string) ([]entities.BookingListItem, error)
	CancelBooking(id int) error
}

type AdminHandler struct {
	Repo BookingAdminStore
}

func NewAdminHandler(repo BookingAdminStore) *AdminHandler {
	return &AdminHandler{Repo: repo}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")
	bookings, err := h.Repo.ListBookings(date, status)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.Repo.CancelBooking(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Could not cancel booking", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Booking canceled"})
}
