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
)

type OrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(database *mongo.Database) *OrderStore {
	return &OrderStore{collection: database.Collection(ordersCollection)}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	_, err := s.collection.InsertOne(ctx, order)
	return translate(err)
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrderStore) FindByCustomer(ctx context.Context, email string) ([]models.Order, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"customerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("error decoding orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (bool, error) {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "paid": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

func (s *OrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *OrderStore) Count(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{})
}

var _ repository.OrderStore = (*OrderStore)(nil)
