package model

// Ticket is the per-seat proof of purchase issued after payment.  QRURL
// holds a PNG data URI of the encoded TicketPayload.
type Ticket struct {
	ID       string `json:"id"`
	TicketNo string `json:"ticketNo"`
	Seat     string `json:"seat"`
	QRURL    string `json:"qrUrl,omitempty"`
}

// TicketPayload is the structured record encoded into each ticket's QR
// code.
type TicketPayload struct {
	ID       string `json:"id"`
	Movie    string `json:"movie"`
	TicketNo string `json:"ticketNo"`
	Seat     string `json:"seat"`
	Cinema   string `json:"cinema"`
	Time     string `json:"time"`
	User     string `json:"user"`
	NIC      string `json:"nic"`
	Date     string `json:"date"`
}
