package model

import "time"

// Booking records one confirmed purchase of one or more seats for one
// slot.  MovieTitle and ShowTime are copied from the slot when the booking
// is made so the record survives later slot edits; the slot itself is not
// referenced.  Bookings are immutable once stored and only ever deleted in
// bulk.
//
// Fields:
//  ID            – opaque store-assigned identifier.
//  MovieTitle    – slot title at booking time.
//  ShowTime      – slot show time at booking time (may be empty for old records).
//  Seats         – seat labels such as "A17", unique within the booking.
//  TotalPrice    – slot price × number of seats, computed by the caller.
//  CustomerName  – name entered in the details step.
//  CustomerPhone – ten digit phone number.
//  CustomerEmail – contact email, required.
//  BookingDate   – creation timestamp assigned by the server.
type Booking struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	MovieTitle    string    `json:"movieTitle" bson:"movieTitle"`
	ShowTime      string    `json:"showTime,omitempty" bson:"showTime,omitempty"`
	Seats         []string  `json:"seats" bson:"seats"`
	TotalPrice    float64   `json:"totalPrice" bson:"totalPrice"`
	CustomerName  string    `json:"customerName" bson:"customerName"`
	CustomerPhone string    `json:"customerPhone" bson:"customerPhone"`
	CustomerEmail string    `json:"customerEmail" bson:"customerEmail"`
	BookingDate   time.Time `json:"bookingDate" bson:"bookingDate"`
}
