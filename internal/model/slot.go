package model

import "strings"

// MovieSlot is one of the four fixed daily show times and the movie
// currently playing in it.  The show time label acts as the natural key
// for ordering and display but the stores do not enforce uniqueness on it.
//
// Fields:
//  ID          – opaque store-assigned identifier.
//  Title       – movie title.
//  Image       – poster URL or a single glyph used for display.
//  Price       – ticket price for one seat.
//  ShowTime    – one of ShowTimes (legacy 12-hour labels are tolerated).
//  Description – free text.
type MovieSlot struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Title       string  `json:"title" bson:"title" validate:"required"`
	Image       string  `json:"image" bson:"image" validate:"required"`
	Price       float64 `json:"price" bson:"price" validate:"gt=0"`
	ShowTime    string  `json:"showTime" bson:"showTime" validate:"required"`
	Description string  `json:"description" bson:"description"`
}

// ShowTimes is the fixed daily show-time sequence.  Slot listings are
// always ordered by position in this slice.
var ShowTimes = []string{"10:30", "13:30", "16:30", "19:30"}

// legacyShowTimes maps the 12-hour labels stored by earlier versions of the
// admin page onto their canonical 24-hour label.
var legacyShowTimes = map[string]string{
	"10:30 AM": "10:30",
	"01:30 PM": "13:30",
	"04:30 PM": "16:30",
	"07:30 PM": "19:30",
}

// Placeholder values used when the slot collection has to be seeded.
const (
	PlaceholderTitle       = "Available Slot"
	PlaceholderImage       = "https://placehold.co/600x400?text=Select+Movie"
	PlaceholderPrice       = 1500
	PlaceholderDescription = "Update this slot with a movie"
)

// ShowTimeRank returns the position of label in ShowTimes, or -1 when the
// label is not part of the fixed sequence.
func ShowTimeRank(label string) int {
	l := strings.ToUpper(strings.TrimSpace(label))
	if canon, ok := legacyShowTimes[l]; ok {
		l = canon
	}
	for i, t := range ShowTimes {
		if t == l {
			return i
		}
	}
	return -1
}

// PlaceholderSlot returns the default content seeded for showTime.
func PlaceholderSlot(showTime string) MovieSlot {
	return MovieSlot{
		Title:       PlaceholderTitle,
		Image:       PlaceholderImage,
		Price:       PlaceholderPrice,
		ShowTime:    showTime,
		Description: PlaceholderDescription,
	}
}
