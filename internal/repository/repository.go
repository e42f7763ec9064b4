// Package repository declares the collection stores the services depend on.
// internal/db implements them over MongoDB and internal/repository/memory in process.
package repository

import (
	"context"
	"errors"

	"github.com/arzan03/ElectricTools/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// UpsertByEmail sets name and non-empty profile fields, creating the
	// record when the email is new. The role is never written.
	UpsertByEmail(ctx context.Context, user *models.User) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, profile models.Profile) (*models.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type ToolStore interface {
	// Insert returns ErrDuplicate when the name is taken.
	Insert(ctx context.Context, tool *models.Tool) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tool, error)
	Find(ctx context.Context, q models.ToolQuery) ([]models.Tool, error)
	Count(ctx context.Context, search string) (int64, error)
	Upsert(ctx context.Context, id primitive.ObjectID, tool *models.Tool) error
	SetImage(ctx context.Context, id primitive.ObjectID, url string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByCustomer(ctx context.Context, email string) ([]models.Order, error)
	// MarkPaid flips paid from false to true. It reports false when the
	// order was already paid or does not exist.
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type PaymentStore interface {
	// Insert returns ErrDuplicate when the order already has a payment.
	Insert(ctx context.Context, payment *models.Payment) error
	FindByOrder(ctx context.Context, orderID primitive.ObjectID) (*models.Payment, error)
	FindByCustomer(ctx context.Context, email string) ([]models.Payment, error)
	Revenue(ctx context.Context) (float64, error)
}

type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) error
	List(ctx context.Context) ([]models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Transactor runs fn as one unit of work where the backing store supports it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
