package entities

import "time"

type BookingListItem struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}
