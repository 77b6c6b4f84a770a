package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// MongoBookingRepo implements BookingStore on the "bookings" collection.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(ctx context.Context, db *mongo.Database) (*MongoBookingRepo, error) {
	r := &MongoBookingRepo{coll: db.Collection("bookings")}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookingDate", Value: -1}}, Options: options.Index().SetName("booking_date_desc")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return r, nil
}

// Create inserts b.  A missing id or booking date is filled in first.
func (r *MongoBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

func (r *MongoBookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.Booking, len(docs))
	for i, d := range docs {
		out[i] = d.booking()
	}
	return out, nil
}

func (r *MongoBookingRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
