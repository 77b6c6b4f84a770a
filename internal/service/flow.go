package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
	"github.com/iliyamo/galaxy-cinema-booking/internal/repository"
	"github.com/iliyamo/galaxy-cinema-booking/internal/session"
	"github.com/iliyamo/galaxy-cinema-booking/internal/ticket"
	"github.com/iliyamo/galaxy-cinema-booking/internal/wizard"
)

const bookingFailedNotice = "Booking failed. Please try again."

// SessionView is what the session endpoints return: the wizard state plus
// values derived from the live slot on every read.
type SessionView struct {
	ID string `json:"id"`
	wizard.State
	StepName   string            `json:"stepName"`
	Slot       *model.MovieSlot  `json:"selectedSlot,omitempty"`
	TotalPrice float64           `json:"totalPrice"`
	Remaining  int               `json:"remainingSeats"`
	Errors     map[string]string `json:"errors,omitempty"`
	Notice     string            `json:"notice,omitempty"`
}

// BookingFlow runs the booking wizard for server-held sessions.
type BookingFlow struct {
	sessions session.Store
	slots    *SlotDirectory
	bookings *BookingService
	tickets  *ticket.Generator
	now      func() time.Time
}

func NewBookingFlow(sessions session.Store, slots *SlotDirectory, bookings *BookingService, tickets *ticket.Generator) *BookingFlow {
	return &BookingFlow{sessions: sessions, slots: slots, bookings: bookings, tickets: tickets, now: time.Now}
}

// Start opens a new session in the details step.
func (f *BookingFlow) Start(ctx context.Context) (*SessionView, error) {
	s := session.New()
	if err := f.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return f.view(ctx, s, wizard.Result{})
}

// Get returns the current view of session id.
func (f *BookingFlow) Get(ctx context.Context, id string) (*SessionView, error) {
	s, err := f.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.view(ctx, s, wizard.Result{})
}

// End discards session id.
func (f *BookingFlow) End(ctx context.Context, id string) error {
	return f.sessions.Delete(ctx, id)
}

// Dispatch applies ev to session id.  Validation problems come back inside
// the view; wizard.ErrInvalidTransition and wizard.ErrUnknownEvent come
// back as errors.  A payment submission holds the session lock until the
// booking is stored, so a second concurrent submission gets
// session.ErrLocked.
func (f *BookingFlow) Dispatch(ctx context.Context, id string, ev wizard.Event) (*SessionView, error) {
	if ev.Type == wizard.EventSubmitPayment {
		unlock, err := f.sessions.Lock(ctx, id)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	s, err := f.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if ev.Type == wizard.EventSelectSlot && ev.SlotID != "" {
		if _, err := f.slots.Get(ctx, ev.SlotID); err != nil {
			if errors.Is(err, repository.ErrSlotNotFound) {
				return f.view(ctx, s, wizard.Result{Errors: map[string]string{"slotId": ErrSlotUnavailable.Error()}})
			}
			return nil, err
		}
	}

	next, res, err := wizard.Apply(s.State, ev)
	if err != nil {
		return nil, err
	}
	if res.Submit {
		next, res = f.submit(ctx, s.ID, next)
	}

	s.State = next
	if err := f.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return f.view(ctx, s, res)
}

// submit stores the booking and issues tickets.  Any failure before the
// booking is stored leaves the state in the payment modal with a notice.
func (f *BookingFlow) submit(ctx context.Context, sessionID string, st wizard.State) (wizard.State, wizard.Result) {
	slot, err := f.slots.Get(ctx, st.SlotID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Str("slot_id", st.SlotID).Msg("submit: slot lookup failed")
		return st, wizard.Result{Notice: bookingFailedNotice}
	}

	draft := st.NewBooking(*slot)
	in := BookingInput{
		MovieTitle:    draft.MovieTitle,
		ShowTime:      draft.ShowTime,
		Seats:         draft.Seats,
		TotalPrice:    draft.TotalPrice,
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		CustomerEmail: draft.CustomerEmail,
	}
	booking, err := f.bookings.Create(ctx, in)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("submit: booking create failed")
		return st, wizard.Result{Notice: bookingFailedNotice}
	}

	at := f.now().UTC()
	tickets, err := f.tickets.Issue(booking, holder(st), at)
	if err != nil {
		// The booking is stored; tickets are rebuilt on the next read.
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("submit: ticket generation failed")
		tickets = nil
	}
	log.Info().Str("session_id", sessionID).Str("booking_id", booking.ID).
		Int("seats", len(booking.Seats)).Float64("total", booking.TotalPrice).Msg("booking issued")
	return wizard.Issue(st, booking, tickets, at), wizard.Result{}
}

// Tickets returns the issued tickets of session id.
func (f *BookingFlow) Tickets(ctx context.Context, id string) ([]model.Ticket, error) {
	s, err := f.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.issuedTickets(ctx, s)
}

// PDF renders the issued tickets of session id and returns the document
// with its download file name.
func (f *BookingFlow) PDF(ctx context.Context, id string) ([]byte, string, error) {
	s, err := f.sessions.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	tickets, err := f.issuedTickets(ctx, s)
	if err != nil {
		return nil, "", err
	}
	h := holder(s.State)
	doc, err := f.tickets.PDF(*s.State.Booking, h, tickets, *s.State.IssuedAt)
	if err != nil {
		return nil, "", err
	}
	return doc, f.tickets.FileName(h), nil
}

func (f *BookingFlow) issuedTickets(ctx context.Context, s *session.Session) ([]model.Ticket, error) {
	st := s.State
	if st.Step != wizard.StepIssued || st.Booking == nil || st.IssuedAt == nil {
		return nil, ErrNotIssued
	}
	if len(st.Tickets) > 0 {
		return st.Tickets, nil
	}
	tickets, err := f.tickets.Issue(*st.Booking, holder(st), *st.IssuedAt)
	if err != nil {
		return nil, err
	}
	s.State.Tickets = tickets
	if err := f.sessions.Save(ctx, s); err != nil {
		log.Warn().Err(err).Str("session_id", s.ID).Msg("could not cache rebuilt tickets")
	}
	return tickets, nil
}

func (f *BookingFlow) view(ctx context.Context, s *session.Session, res wizard.Result) (*SessionView, error) {
	v := &SessionView{
		ID:        s.ID,
		State:     s.State,
		StepName:  s.State.Step.String(),
		Remaining: s.State.Remaining(),
		Errors:    res.Errors,
		Notice:    res.Notice,
	}
	if s.State.Paying {
		v.StepName = "paying"
	}
	if b := s.State.Booking; b != nil {
		v.TotalPrice = b.TotalPrice
		return v, nil
	}
	if s.State.SlotID == "" {
		return v, nil
	}
	slot, err := f.slots.Get(ctx, s.State.SlotID)
	switch {
	case errors.Is(err, repository.ErrSlotNotFound):
		return v, nil
	case err != nil:
		return nil, err
	}
	v.Slot = slot
	v.TotalPrice = wizard.TotalPrice(slot.Price, s.State.TicketCount)
	return v, nil
}

func holder(st wizard.State) ticket.Holder {
	return ticket.Holder{Name: st.Customer.Name, NIC: st.Customer.NIC}
}
