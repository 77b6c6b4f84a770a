// Package ticket turns a stored booking into per-seat tickets: an id, a
// "TICKET i/n" number, a QR code of the ticket payload and, on request, a
// printable PDF with one card per ticket.
package ticket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// DefaultVenue is printed on tickets when no venue is configured.
const DefaultVenue = "Galaxy Cinema"

// QRSize is the pixel size of generated QR images.
const QRSize = 256

// Holder identifies the person the tickets are issued to.  The NIC is
// printed on each ticket and forms part of the ticket id.
type Holder struct {
	Name string `json:"name"`
	NIC  string `json:"nic"`
}

// Generator issues ticket artifacts for one venue.
type Generator struct {
	Venue string
}

// NewGenerator returns a Generator for venue, falling back to DefaultVenue.
func NewGenerator(venue string) *Generator {
	if venue == "" {
		venue = DefaultVenue
	}
	return &Generator{Venue: venue}
}

// Issue builds one ticket per seat of b.  Ticket ids are
// "<nic>-<unix millis of at>-<seat index>" and are only as unique as the
// timestamp: two issues for the same NIC within the same millisecond
// collide.
func (g *Generator) Issue(b model.Booking, h Holder, at time.Time) ([]model.Ticket, error) {
	n := len(b.Seats)
	if n == 0 {
		return nil, errors.New("booking has no seats")
	}
	stamp := at.UnixMilli()
	tickets := make([]model.Ticket, 0, n)
	for i, seat := range b.Seats {
		p := model.TicketPayload{
			ID:       fmt.Sprintf("%s-%d-%d", h.NIC, stamp, i),
			Movie:    b.MovieTitle,
			TicketNo: fmt.Sprintf("TICKET %d/%d", i+1, n),
			Seat:     seat,
			Cinema:   g.Venue,
			Time:     b.ShowTime,
			User:     h.Name,
			NIC:      h.NIC,
			Date:     at.Format("2006-01-02"),
		}
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		uri, err := QRDataURI(string(raw), QRSize)
		if err != nil {
			return nil, fmt.Errorf("ticket %d: %w", i+1, err)
		}
		tickets = append(tickets, model.Ticket{
			ID:       p.ID,
			TicketNo: p.TicketNo,
			Seat:     seat,
			QRURL:    uri,
		})
	}
	return tickets, nil
}
