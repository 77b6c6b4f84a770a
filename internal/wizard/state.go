// Package wizard implements the five step booking flow as a finite state
// machine.  Apply is pure: it takes the current State and an Event and
// returns the next State together with any validation output.  Side
// effects (persisting the booking, issuing tickets) are requested through
// Result.Submit and completed by the caller with Issue or left pending
// when persistence fails.
package wizard

import (
	"time"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
	"github.com/iliyamo/galaxy-cinema-booking/internal/seatmap"
)

// Step is a wizard page.
type Step int

const (
	StepDetails     Step = 1
	StepMovieSelect Step = 2
	StepSeatSelect  Step = 3
	StepConfirm     Step = 4
	StepIssued      Step = 5
)

// Ticket count bounds.
const (
	MinTickets = 1
	MaxTickets = 10
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepMovieSelect:
		return "movie_select"
	case StepSeatSelect:
		return "seat_select"
	case StepConfirm:
		return "confirm"
	case StepIssued:
		return "issued"
	}
	return "unknown"
}

// Customer is the personal details draft entered on the first step.
type Customer struct {
	Name  string `json:"name" validate:"notblank"`
	NIC   string `json:"nic" validate:"notblank"`
	Phone string `json:"phone" validate:"phone10"`
	Email string `json:"email" validate:"basic_email"`
}

// Card is the payment form draft.  It is validated within the request that
// submits it and never serialized with the session.
type Card struct {
	Number string `json:"number" validate:"card16"`
	Expiry string `json:"expiry" validate:"min=5"`
	CVC    string `json:"cvc" validate:"cvc"`
	Name   string `json:"name" validate:"notblank"`
}

// State is the in-progress booking owned by one session.  Price is never
// stored here; see TotalPrice.
type State struct {
	Step        Step              `json:"step"`
	Paying      bool              `json:"paying"`
	Customer    Customer          `json:"customer"`
	Card        Card              `json:"-"`
	TicketCount int               `json:"ticketCount"`
	Seats       seatmap.Selection `json:"selectedSeats"`
	SlotID      string            `json:"selectedSlotId,omitempty"`
	Booking     *model.Booking    `json:"booking,omitempty"`
	Tickets     []model.Ticket    `json:"tickets,omitempty"`
	IssuedAt    *time.Time        `json:"issuedAt,omitempty"`
}

// New returns the initial state of a fresh booking.
func New() State {
	return State{Step: StepDetails, TicketCount: MinTickets}
}

// TotalPrice derives the amount due from the live slot price and the
// current ticket count.
func TotalPrice(price float64, ticketCount int) float64 {
	return price * float64(ticketCount)
}

// Remaining returns how many seats still have to be picked.
func (s State) Remaining() int {
	return s.TicketCount - s.Seats.Len()
}

// NewBooking builds the record persisted when payment succeeds.  Title
// and show time are copied from slot so the booking is a snapshot.
func (s State) NewBooking(slot model.MovieSlot) model.Booking {
	seats := make([]string, len(s.Seats.Seats))
	copy(seats, s.Seats.Seats)
	return model.Booking{
		MovieTitle:    slot.Title,
		ShowTime:      slot.ShowTime,
		Seats:         seats,
		TotalPrice:    TotalPrice(slot.Price, s.TicketCount),
		CustomerName:  s.Customer.Name,
		CustomerPhone: s.Customer.Phone,
		CustomerEmail: s.Customer.Email,
	}
}
