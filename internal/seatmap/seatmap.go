// Package seatmap models the fixed auditorium grid and the bounded seat
// selection made during a booking.  There is no server-side reservation:
// the grid only knows which labels exist, not which are taken.
package seatmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed auditorium geometry.
const (
	Rows        = 13
	SeatsPerRow = 40
	AisleAfter  = 20
)

// Row is one rendered row of the grid.
type Row struct {
	Label string `json:"label"`
	Seats []int  `json:"seats"`
}

// Layout describes the whole grid.  AisleAfter is the seat number after
// which the aisle gap is drawn.
type Layout struct {
	Rows        []Row `json:"rows"`
	SeatsPerRow int   `json:"seatsPerRow"`
	AisleAfter  int   `json:"aisleAfter"`
}

// RowLabel converts a zero-based row index to its letter (0 -> A).
func RowLabel(i int) string {
	if i < 0 || i >= Rows {
		return ""
	}
	return string(rune('A' + i))
}

// SeatLabel joins a row label and seat number, e.g. ("C", 14) -> "C14".
func SeatLabel(row string, seat int) string {
	return row + strconv.Itoa(seat)
}

// Grid builds the fixed 13x40 layout with rows A..M and seats 1..40.
func Grid() Layout {
	rows := make([]Row, 0, Rows)
	for r := 0; r < Rows; r++ {
		seats := make([]int, SeatsPerRow)
		for s := range seats {
			seats[s] = s + 1
		}
		rows = append(rows, Row{Label: RowLabel(r), Seats: seats})
	}
	return Layout{Rows: rows, SeatsPerRow: SeatsPerRow, AisleAfter: AisleAfter}
}

// ParseLabel splits a seat label into row index and seat number and
// reports whether the label lies on the grid.
func ParseLabel(label string) (row int, seat int, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if len(s) < 2 {
		return 0, 0, false
	}
	row = int(s[0] - 'A')
	if row < 0 || row >= Rows {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || n > SeatsPerRow {
		return 0, 0, false
	}
	return row, n, true
}

// Normalize returns the canonical form of a valid label ("a07" -> "A7").
func Normalize(label string) (string, error) {
	row, seat, ok := ParseLabel(label)
	if !ok {
		return "", fmt.Errorf("seat %q is not on the seat map", label)
	}
	return SeatLabel(RowLabel(row), seat), nil
}
