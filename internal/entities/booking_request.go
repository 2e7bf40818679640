package entities

// BookingRequest is the booking payload as it travels on the wire. Start and
// End stay textual so the handler can report which timestamp is malformed.
type BookingRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// EmailStatusQueued means the confirmation email was handed to the async
// sender; delivery is not awaited.
const EmailStatusQueued = "queued"

type BookingResponse struct {
	Status      string `json:"status"`
	Code        string `json:"code"`
	EmailStatus string `json:"emailStatus,omitempty"`
}
