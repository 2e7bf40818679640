package entities

// Slot is a bookable time window as reported by the gateway. Start and End
// are ISO-8601 strings carrying an explicit UTC offset; Start identifies the
// slot and its first 10 characters are the calendar date in the reporting
// offset.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse is the payload of GET /calendar/availability. Range
// covers the bookable window (End exclusive) and Week the current
// Monday-start week.
type AvailabilityResponse struct {
	TZ    string    `json:"tz"`
	Range DateRange `json:"range"`
	Week  DateRange `json:"week"`
	Slots []Slot    `json:"slots"`
}
