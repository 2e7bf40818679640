package entities

// BookingEmailData feeds the confirmation email template.
type BookingEmailData struct {
	UserName           string
	BookingCode        string
	StartTimeFormatted string
	EndTimeFormatted   string
	Notes              string
	CurrentYear        int
}
