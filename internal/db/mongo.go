package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/ElectricTools/internal/logger"
	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	toolsCollection    = "tools"
	ordersCollection   = "orders"
	paymentsCollection = "payments"
	reviewsCollection  = "reviews"
)

// ConnectMongoDB opens a client and verifies it with a ping.
func ConnectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri).
		SetServerSelectionTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB")
	return client, nil
}

// EnsureIndexes creates the unique indexes that back duplicate detection.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := []struct {
		collection string
		field      string
	}{
		{usersCollection, "email"},
		{toolsCollection, "name"},
		{paymentsCollection, "orderId"},
	}
	for _, idx := range unique {
		_, err := database.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create %s.%s index: %w", idx.collection, idx.field, err)
		}
	}

	_, err := database.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "customerEmail", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create orders.customerEmail index: %w", err)
	}
	return nil
}

// Transactor wraps work in a session transaction. Transactions need a
// replica set, so on a standalone server it is created disabled and fn
// runs directly.
type Transactor struct {
	client  *mongo.Client
	enabled bool
}

func NewTransactor(client *mongo.Client, enabled bool) *Transactor {
	return &Transactor{client: client, enabled: enabled}
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}

var _ repository.Transactor = (*Transactor)(nil)
