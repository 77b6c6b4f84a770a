package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlotDocAcceptsObjectIDs(t *testing.T) {
	oid := primitive.NewObjectID()
	tests := []struct {
		name   string
		id     interface{}
		wantID string
	}{
		{"uuid string", "6f1c2a4e-1111-4c2b-9d0a-0123456789ab", "6f1c2a4e-1111-4c2b-9d0a-0123456789ab"},
		{"mongoose object id", oid, oid.Hex()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{
				"_id": tt.id, "title": "Dune", "image": "🎬", "price": int32(1500),
				"showTime": "07:30 PM", "__v": int32(0),
			})
			require.NoError(t, err)

			var d slotDoc
			require.NoError(t, bson.Unmarshal(raw, &d))
			s := d.slot()
			assert.Equal(t, tt.wantID, s.ID)
			assert.Equal(t, 1500.0, s.Price)
			assert.Equal(t, "07:30 PM", s.ShowTime)
		})
	}
}

func TestBookingDocAcceptsObjectIDs(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	raw, err := bson.Marshal(bson.M{
		"_id": oid, "movieTitle": "Dune", "seats": bson.A{"A1", "A2"}, "totalPrice": int32(3000),
		"customerName": "Kamal", "customerPhone": "0771234567", "customerEmail": "k@example.com",
		"bookingDate": when,
	})
	require.NoError(t, err)

	var d bookingDoc
	require.NoError(t, bson.Unmarshal(raw, &d))
	b := d.booking()
	assert.Equal(t, oid.Hex(), b.ID)
	assert.Equal(t, []string{"A1", "A2"}, b.Seats)
	assert.Equal(t, 3000.0, b.TotalPrice)
	assert.True(t, when.Equal(b.BookingDate))
}

func TestDocIDRejectsOtherTypes(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": int32(7), "title": "x"})
	require.NoError(t, err)
	var d slotDoc
	assert.Error(t, bson.Unmarshal(raw, &d))
}

func TestIDFilter(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "slot-1"}, idFilter("slot-1"))

	oid := primitive.NewObjectID()
	f := idFilter(oid.Hex())
	assert.Equal(t, bson.M{"$in": bson.A{oid.Hex(), oid}}, f["_id"])
}
