package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// MongoSlotRepo implements SlotStore on the "movies" collection.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo returns a slot store and makes sure its indexes exist.
func NewMongoSlotRepo(ctx context.Context, db *mongo.Database) (*MongoSlotRepo, error) {
	r := &MongoSlotRepo{coll: db.Collection("movies")}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "showTime", Value: 1}}, Options: options.Index().SetName("show_time")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create movie indexes: %w", err)
	}
	return r, nil
}

func (r *MongoSlotRepo) List(ctx context.Context) ([]model.MovieSlot, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []slotDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	slots := make([]model.MovieSlot, len(docs))
	for i, d := range docs {
		slots[i] = d.slot()
	}
	return slots, nil
}

func (r *MongoSlotRepo) Get(ctx context.Context, id string) (*model.MovieSlot, error) {
	var d slotDoc
	err := r.coll.FindOne(ctx, idFilter(id)).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	s := d.slot()
	return &s, nil
}

// Create inserts s, assigning a fresh id when s.ID is empty.
func (r *MongoSlotRepo) Create(ctx context.Context, s *model.MovieSlot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

func (r *MongoSlotRepo) CreateMany(ctx context.Context, slots []model.MovieSlot) error {
	if len(slots) == 0 {
		return nil
	}
	docs := make([]interface{}, len(slots))
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		docs[i] = slots[i]
	}
	_, err := r.coll.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	return err
}

// Update replaces the stored fields of s.  The id itself never changes.
func (r *MongoSlotRepo) Update(ctx context.Context, s model.MovieSlot) error {
	set := bson.M{
		"title":       s.Title,
		"image":       s.Image,
		"price":       s.Price,
		"showTime":    s.ShowTime,
		"description": s.Description,
	}
	res, err := r.coll.UpdateOne(ctx, idFilter(s.ID), bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}
