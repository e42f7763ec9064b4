package db

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewStore struct {
	collection *mongo.Collection
}

func NewReviewStore(database *mongo.Database) *ReviewStore {
	return &ReviewStore{collection: database.Collection(reviewsCollection)}
}

func (s *ReviewStore) Insert(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	_, err := s.collection.InsertOne(ctx, review)
	return translate(err)
}

// List returns the newest reviews first.
func (s *ReviewStore) List(ctx context.Context) ([]models.Review, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ReviewStore = (*ReviewStore)(nil)
