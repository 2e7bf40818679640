package wizard

import (
	"context"
	"net/http"

	"boveda/internal/calendar"
	"boveda/internal/entities"
)

// Step is the wizard's position in the day -> confirm -> success flow.
type Step int

const (
	StepDay Step = iota
	StepConfirm
	StepSuccess
)

// SubmissionStatus tracks the outcome of the booking request.
type SubmissionStatus int

const (
	StatusIdle SubmissionStatus = iota
	StatusLoading
	StatusSuccess
	StatusConflict
	StatusError
)

// UI copy, shown inline in the widget.
const (
	MsgConfirmed    = "Reserva confirmada. Te enviamos el detalle por email."
	MsgSlotTaken    = "Ese horario ya fue tomado. Elegí otro."
	MsgSubmitFailed = "No pudimos confirmar la cita. Intentá nuevamente."
	MsgLoadFailed   = "No pudimos cargar la disponibilidad. Intentá más tarde."
)

type Contact struct {
	Name  string
	Email string
	Notes string
}

// Submitter issues the booking request. It returns the gateway's HTTP
// status code; a non-nil error means the request never produced a response.
type Submitter interface {
	Book(ctx context.Context, slot entities.Slot, contact Contact) (int, error)
}

// AvailabilityFetcher loads the availability window once per mount.
type AvailabilityFetcher interface {
	Availability(ctx context.Context, days int) (*entities.AvailabilityResponse, error)
}

// Event is dispatched by the UI layer; every state change flows through
// Dispatch so the transition table stays testable in one place.
type Event interface {
	event()
}

type DatePicked struct{ Date string }

type SlotPicked struct{ Slot entities.Slot }

type ContactEdited struct{ Contact Contact }

type SubmitRequested struct{}

// ChangeRequested is the "Cambiar" action: back to the day step keeping the
// chosen slot for re-selection.
type ChangeRequested struct{}

// BookAnother is the "Agendar otra reunión" action from the success step.
type BookAnother struct{}

type WeekJumped struct{ Index int }

func (DatePicked) event()      {}
func (SlotPicked) event()      {}
func (ContactEdited) event()   {}
func (SubmitRequested) event() {}
func (ChangeRequested) event() {}
func (BookAnother) event()     {}
func (WeekJumped) event()      {}

// Wizard drives the booking flow over a fetched availability window. It is
// single-goroutine by design: all events arrive from the UI event loop.
type Wizard struct {
	cache     *calendar.Cache
	nav       *calendar.Navigator
	submitter Submitter

	step         Step
	selectedSlot *entities.Slot
	contact      Contact
	submission   SubmissionStatus
	message      string
	loadFailed   bool
}

// New builds a wizard over an already fetched availability window. The
// earliest available date is auto-selected, matching the widget on mount.
func New(resp *entities.AvailabilityResponse, submitter Submitter) *Wizard {
	cache := calendar.NewCache(resp)
	return &Wizard{
		cache:     cache,
		nav:       calendar.NewNavigator(cache),
		submitter: submitter,
		step:      StepDay,
	}
}

// Mount fetches availability and builds the wizard. A fetch failure is
// terminal for the session: the wizard surfaces MsgLoadFailed and ignores
// all events; the user must reload to retry.
func Mount(ctx context.Context, fetcher AvailabilityFetcher, days int, submitter Submitter) *Wizard {
	resp, err := fetcher.Availability(ctx, days)
	if err != nil {
		w := New(nil, submitter)
		w.loadFailed = true
		w.message = MsgLoadFailed
		return w
	}
	return New(resp, submitter)
}

// Dispatch applies one event. Guarded transitions that do not fire are
// silent no-ops.
func (w *Wizard) Dispatch(ctx context.Context, ev Event) {
	if w.loadFailed {
		return
	}
	switch e := ev.(type) {
	case DatePicked:
		w.pickDate(e.Date)
	case SlotPicked:
		w.pickSlot(e.Slot)
	case ContactEdited:
		if w.step == StepConfirm {
			w.contact = e.Contact
		}
	case SubmitRequested:
		w.submit(ctx)
	case ChangeRequested:
		if w.step == StepConfirm {
			w.step = StepDay
			w.submission = StatusIdle
			w.message = ""
		}
	case BookAnother:
		if w.step == StepSuccess {
			w.reset()
		}
	case WeekJumped:
		if w.nav.JumpToWeek(e.Index) {
			w.selectedSlot = nil
			w.submission = StatusIdle
			w.message = ""
			w.step = StepDay
		}
	}
}

func (w *Wizard) pickDate(date string) {
	if !w.nav.SelectDate(date) {
		return
	}
	w.selectedSlot = nil
	w.submission = StatusIdle
	w.message = ""
	w.step = StepDay
}

func (w *Wizard) pickSlot(slot entities.Slot) {
	date := w.nav.SelectedDate()
	if date == "" || !w.cache.HoldsSlot(date, slot) {
		return
	}
	w.selectedSlot = &slot
	w.submission = StatusIdle
	w.message = ""
	w.step = StepConfirm
}

func (w *Wizard) submit(ctx context.Context) {
	if w.step != StepConfirm || w.selectedSlot == nil || w.contact.Email == "" {
		return
	}
	if w.submission == StatusLoading {
		return
	}
	w.submission = StatusLoading
	w.message = ""

	status, err := w.submitter.Book(ctx, *w.selectedSlot, w.contact)
	switch {
	case err != nil:
		w.submission = StatusError
		w.message = MsgSubmitFailed
	case status >= 200 && status < 300:
		w.submission = StatusSuccess
		w.message = MsgConfirmed
		w.step = StepSuccess
	case status == http.StatusConflict:
		// The slot is gone; clear it so a stale slot cannot be resubmitted.
		w.submission = StatusConflict
		w.message = MsgSlotTaken
		w.selectedSlot = nil
		w.step = StepDay
	default:
		w.submission = StatusError
		w.message = MsgSubmitFailed
	}
}

func (w *Wizard) reset() {
	w.selectedSlot = nil
	w.contact = Contact{}
	w.submission = StatusIdle
	w.message = ""
	w.step = StepDay
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) SelectedDate() string {
	return w.nav.SelectedDate()
}

// SelectedSlot returns the chosen slot, nil if none.
func (w *Wizard) SelectedSlot() *entities.Slot {
	return w.selectedSlot
}

func (w *Wizard) Contact() Contact {
	return w.contact
}

func (w *Wizard) Submission() SubmissionStatus {
	return w.submission
}

// Message returns the inline message for the current state, "" if none.
func (w *Wizard) Message() string {
	return w.message
}

// LoadFailed reports whether the availability fetch failed on mount.
func (w *Wizard) LoadFailed() bool {
	return w.loadFailed
}

// Navigator exposes the calendar paging state for rendering.
func (w *Wizard) Navigator() *calendar.Navigator {
	return w.nav
}

// SlotsForSelectedDate returns the slots of the selected date for rendering.
func (w *Wizard) SlotsForSelectedDate() []entities.Slot {
	date := w.nav.SelectedDate()
	if date == "" {
		return nil
	}
	return w.cache.SlotsFor(date)
}
