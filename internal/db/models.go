package db

import "time"

type Booking struct {
	ID        int
	Code      string
	UserName  string
	UserEmail string
	Notes     string
	Status    string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
