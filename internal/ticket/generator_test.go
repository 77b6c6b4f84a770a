package ticket

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

var issuedAt = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func sampleBooking(seats ...string) model.Booking {
	return model.Booking{
		ID:         "b-1",
		MovieTitle: "Dune: Part Two",
		ShowTime:   "19:30",
		Seats:      seats,
		TotalPrice: 1500 * float64(len(seats)),
	}
}

func TestIssue(t *testing.T) {
	g := NewGenerator("")
	h := Holder{Name: "Kamal", NIC: "200012345678"}
	tickets, err := g.Issue(sampleBooking("A1", "A2"), h, issuedAt)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, "TICKET 1/2", tickets[0].TicketNo)
	assert.Equal(t, "TICKET 2/2", tickets[1].TicketNo)
	assert.Equal(t, "200012345678-1792056600000-0", tickets[0].ID)
	assert.Equal(t, "200012345678-1792056600000-1", tickets[1].ID)
	assert.Equal(t, "A2", tickets[1].Seat)
	for _, tk := range tickets {
		assert.True(t, len(tk.QRURL) > len(dataURIPrefix))
		png, err := decodeDataURI(tk.QRURL)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	}
}

func TestIssueRejectsEmptyBooking(t *testing.T) {
	_, err := NewGenerator("").Issue(sampleBooking(), Holder{NIC: "1"}, issuedAt)
	assert.Error(t, err)
}

func TestPayloadEncoding(t *testing.T) {
	p := model.TicketPayload{ID: "x", Movie: "M", TicketNo: "TICKET 1/1", Seat: "B3", Cinema: DefaultVenue, Time: "10:30", User: "U", NIC: "N", Date: "2026-10-15"}
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cinema":"Galaxy Cinema"`)
	assert.Contains(t, string(raw), `"ticketNo":"TICKET 1/1"`)
}

func TestPDF(t *testing.T) {
	g := NewGenerator("Galaxy Cinema")
	h := Holder{Name: "Kamal", NIC: "200012345678"}
	seats := []string{"A1", "A2", "A3", "A4", "A5"}
	b := sampleBooking(seats...)
	tickets, err := g.Issue(b, h, issuedAt)
	require.NoError(t, err)

	out, err := g.PDF(b, h, tickets, issuedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	// five cards do not fit on one page; the count includes the /Pages node
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page")), 3)
}

func TestFileName(t *testing.T) {
	g := NewGenerator("Galaxy Cinema")
	assert.Equal(t, "Galaxy_Tickets_2000V.pdf", g.FileName(Holder{NIC: "2000/V"}))
}
