package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// docID is a document _id in string form.  This service writes uuid
// strings; collections created by the earlier Mongoose server hold
// ObjectIds, which decode to their hex form.
type docID string

func (d *docID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*d = docID(rv.StringValue())
	case bsontype.ObjectID:
		*d = docID(rv.ObjectID().Hex())
	default:
		return fmt.Errorf("unsupported _id type %s", t)
	}
	return nil
}

// idFilter matches id whether it was stored as a string or, when it is a
// valid hex ObjectId, as an ObjectId.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

type slotDoc struct {
	ID          docID   `bson:"_id"`
	Title       string  `bson:"title"`
	Image       string  `bson:"image"`
	Price       float64 `bson:"price"`
	ShowTime    string  `bson:"showTime"`
	Description string  `bson:"description"`
}

func (d slotDoc) slot() model.MovieSlot {
	return model.MovieSlot{
		ID:          string(d.ID),
		Title:       d.Title,
		Image:       d.Image,
		Price:       d.Price,
		ShowTime:    d.ShowTime,
		Description: d.Description,
	}
}

type bookingDoc struct {
	ID            docID     `bson:"_id"`
	MovieTitle    string    `bson:"movieTitle"`
	ShowTime      string    `bson:"showTime,omitempty"`
	Seats         []string  `bson:"seats"`
	TotalPrice    float64   `bson:"totalPrice"`
	CustomerName  string    `bson:"customerName"`
	CustomerPhone string    `bson:"customerPhone"`
	CustomerEmail string    `bson:"customerEmail"`
	BookingDate   time.Time `bson:"bookingDate"`
}

func (d bookingDoc) booking() model.Booking {
	return model.Booking{
		ID:            string(d.ID),
		MovieTitle:    d.MovieTitle,
		ShowTime:      d.ShowTime,
		Seats:         d.Seats,
		TotalPrice:    d.TotalPrice,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		CustomerEmail: d.CustomerEmail,
		BookingDate:   d.BookingDate,
	}
}
