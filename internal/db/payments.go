package db

import (
	"context"
	"fmt"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentStore struct {
	collection *mongo.Collection
}

func NewPaymentStore(database *mongo.Database) *PaymentStore {
	return &PaymentStore{collection: database.Collection(paymentsCollection)}
}

func (s *PaymentStore) Insert(ctx context.Context, payment *models.Payment) error {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, payment)
	return translate(err)
}

func (s *PaymentStore) FindByOrder(ctx context.Context, orderID primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&payment); err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *PaymentStore) FindByCustomer(ctx context.Context, email string) ([]models.Payment, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"customerEmail": email})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("error decoding payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentStore) Revenue(ctx context.Context) (float64, error) {
	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalToolPrice"}}}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("error decoding revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

var _ repository.PaymentStore = (*PaymentStore)(nil)
