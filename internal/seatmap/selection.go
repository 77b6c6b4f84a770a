package seatmap

import (
	"fmt"
	"slices"
)

// Selection is the set of seats picked for one booking, bounded by the
// ticket count.  The zero value is an empty selection.
type Selection struct {
	Seats []string `json:"seats"`
}

// Contains reports whether seat is selected.
func (s Selection) Contains(seat string) bool {
	return slices.Contains(s.Seats, seat)
}

// Len returns the number of selected seats.
func (s Selection) Len() int { return len(s.Seats) }

// Toggle removes seat when it is already selected, otherwise adds it when
// fewer than limit seats are held.  When the selection is full the toggle
// is rejected: the selection comes back unchanged with a user-facing
// capacity notice.  The receiver is not modified.
func (s Selection) Toggle(seat string, limit int) (Selection, string, error) {
	label, err := Normalize(seat)
	if err != nil {
		return s, "", err
	}
	if s.Contains(label) {
		out := make([]string, 0, len(s.Seats))
		for _, v := range s.Seats {
			if v != label {
				out = append(out, v)
			}
		}
		return Selection{Seats: out}, "", nil
	}
	if len(s.Seats) >= limit {
		return s, fmt.Sprintf("You can only select %d seat(s).", limit), nil
	}
	out := append(slices.Clone(s.Seats), label)
	return Selection{Seats: out}, "", nil
}

// Clear returns an empty selection.
func (s Selection) Clear() Selection { return Selection{} }
