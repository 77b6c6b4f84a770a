package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
	"github.com/iliyamo/galaxy-cinema-booking/internal/validator"
)

// EventType names a user action.
type EventType string

const (
	EventSubmitDetails    EventType = "submit_details"
	EventSelectSlot       EventType = "select_slot"
	EventIncrementTickets EventType = "increment_tickets"
	EventDecrementTickets EventType = "decrement_tickets"
	EventToggleSeat       EventType = "toggle_seat"
	EventProceed          EventType = "proceed"
	EventBack             EventType = "back"
	EventOpenPayment      EventType = "open_payment"
	EventCancelPayment    EventType = "cancel_payment"
	EventSubmitPayment    EventType = "submit_payment"
	EventRestart          EventType = "restart"
)

// Event is one user action with its optional payload.
type Event struct {
	Type     EventType `json:"type"`
	Customer *Customer `json:"customer,omitempty"`
	SlotID   string    `json:"slotId,omitempty"`
	Seat     string    `json:"seat,omitempty"`
	Card     *Card     `json:"card,omitempty"`
}

// Result carries per-field validation errors, a user-facing notice, and
// whether the caller must now persist the booking.
type Result struct {
	Errors map[string]string `json:"errors,omitempty"`
	Notice string            `json:"notice,omitempty"`
	Submit bool              `json:"-"`
}

var (
	// ErrUnknownEvent is returned for an event type Apply does not know.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrInvalidTransition is returned when an event is not allowed in the
	// current step.
	ErrInvalidTransition = errors.New("invalid transition")
)

var detailMessages = map[string]string{
	"name":  "Please enter your name",
	"nic":   "Please enter your NIC number",
	"phone": "Invalid phone number",
	"email": "Invalid email address",
}

var cardMessages = map[string]string{
	"number": "Invalid card number",
	"expiry": "Invalid expiry date",
	"cvc":    "Invalid CVC",
	"name":   "Please enter the card holder name",
}

// Apply returns the state that follows s after ev.  Validation failures
// keep the step and are reported in Result; events that make no sense in
// the current step return ErrInvalidTransition and the unchanged state.
func Apply(s State, ev Event) (State, Result, error) {
	if s.Paying && ev.Type != EventSubmitPayment && ev.Type != EventCancelPayment {
		return s, Result{}, invalid(s, ev)
	}
	switch ev.Type {
	case EventSubmitDetails:
		if s.Step != StepDetails {
			return s, Result{}, invalid(s, ev)
		}
		if ev.Customer != nil {
			s.Customer = normalizeCustomer(*ev.Customer)
		}
		return proceed(s)

	case EventSelectSlot:
		if s.Step != StepMovieSelect {
			return s, Result{}, invalid(s, ev)
		}
		id := strings.TrimSpace(ev.SlotID)
		if id == "" {
			return s, Result{Errors: map[string]string{"slotId": "Please select a movie"}}, nil
		}
		s.SlotID = id
		return s, Result{}, nil

	case EventIncrementTickets:
		if s.Step != StepMovieSelect && s.Step != StepSeatSelect {
			return s, Result{}, invalid(s, ev)
		}
		if s.TicketCount < MaxTickets {
			s.TicketCount++
		}
		return s, Result{}, nil

	case EventDecrementTickets:
		if s.Step != StepMovieSelect && s.Step != StepSeatSelect {
			return s, Result{}, invalid(s, ev)
		}
		if s.TicketCount > MinTickets {
			s.TicketCount--
			s.Seats = s.Seats.Clear()
		}
		return s, Result{}, nil

	case EventToggleSeat:
		if s.Step != StepSeatSelect {
			return s, Result{}, invalid(s, ev)
		}
		next, notice, err := s.Seats.Toggle(ev.Seat, s.TicketCount)
		if err != nil {
			return s, Result{Errors: map[string]string{"seat": err.Error()}}, nil
		}
		s.Seats = next
		return s, Result{Notice: notice}, nil

	case EventProceed:
		return proceed(s)

	case EventBack:
		switch s.Step {
		case StepMovieSelect, StepSeatSelect, StepConfirm:
			s.Step--
			return s, Result{}, nil
		}
		return s, Result{}, invalid(s, ev)

	case EventOpenPayment:
		if s.Step != StepConfirm {
			return s, Result{}, invalid(s, ev)
		}
		s.Paying = true
		return s, Result{}, nil

	case EventCancelPayment:
		if !s.Paying {
			return s, Result{}, invalid(s, ev)
		}
		s.Paying = false
		return s, Result{}, nil

	case EventSubmitPayment:
		if !s.Paying {
			return s, Result{}, invalid(s, ev)
		}
		if ev.Card != nil {
			s.Card = normalizeCard(*ev.Card)
		}
		if errs := validator.Validate(s.Card, cardMessages); errs != nil {
			return s, Result{Errors: errs}, nil
		}
		return s, Result{Submit: true}, nil

	case EventRestart:
		if s.Step != StepIssued {
			return s, Result{}, invalid(s, ev)
		}
		return New(), Result{}, nil
	}
	return s, Result{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
}

// Issue completes a submitted payment: the booking has been stored and
// tickets generated.
func Issue(s State, booking model.Booking, tickets []model.Ticket, at time.Time) State {
	s.Step = StepIssued
	s.Paying = false
	s.Card = Card{}
	s.Booking = &booking
	s.Tickets = tickets
	s.IssuedAt = &at
	return s
}

func proceed(s State) (State, Result, error) {
	switch s.Step {
	case StepDetails:
		if errs := validator.Validate(s.Customer, detailMessages); errs != nil {
			return s, Result{Errors: errs}, nil
		}
	case StepMovieSelect:
		if s.SlotID == "" {
			return s, Result{Errors: map[string]string{"slotId": "Please select a movie"}}, nil
		}
	case StepSeatSelect:
		if s.Seats.Len() != s.TicketCount {
			return s, Result{Notice: fmt.Sprintf("Select %d more seat(s) to continue.", s.Remaining())}, nil
		}
	default:
		return s, Result{}, invalid(s, Event{Type: EventProceed})
	}
	s.Step++
	return s, Result{}, nil
}

func invalid(s State, ev Event) error {
	state := s.Step.String()
	if s.Paying {
		state = "paying"
	}
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, ev.Type, state)
}

func normalizeCustomer(c Customer) Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		NIC:   strings.TrimSpace(c.NIC),
		Phone: validator.StripSpaces(c.Phone),
		Email: strings.TrimSpace(c.Email),
	}
}

func normalizeCard(c Card) Card {
	return Card{
		Number: FormatCardNumber(c.Number),
		Expiry: FormatExpiry(c.Expiry),
		CVC:    strings.TrimSpace(c.CVC),
		Name:   strings.TrimSpace(c.Name),
	}
}

// FormatCardNumber groups the digits of n in blocks of four.  Non-digit
// characters are dropped; the digit count is left for validation.
func FormatCardNumber(n string) string {
	d := digits(n)
	var b strings.Builder
	for i, r := range d {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry keeps the first four digits of e and renders them as MM/YY.
func FormatExpiry(e string) string {
	d := digits(e)
	if len(d) > 4 {
		d = d[:4]
	}
	if len(d) > 2 {
		return d[:2] + "/" + d[2:]
	}
	return d
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
