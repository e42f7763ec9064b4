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

type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(database *mongo.Database) *UserStore {
	return &UserStore{collection: database.Collection(usersCollection)}
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

func (s *UserStore) UpsertByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now().UTC()
	set := profileSet(user.Name, user.Profile)
	set["updatedAt"] = now

	var out models.User
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"email": user.Email},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, profile models.Profile) (*models.User, error) {
	set := profileSet(name, profile)
	set["updatedAt"] = time.Now().UTC()
	return s.update(ctx, id, bson.M{"$set": set})
}

func (s *UserStore) SetRole(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	return s.update(ctx, id, bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}})
}

func (s *UserStore) update(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	var out models.User
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *UserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{})
}

// profileSet builds a $set document from the non-empty fields only, so a
// partial payload never clears stored values.
func profileSet(name string, p models.Profile) bson.M {
	set := bson.M{}
	fields := map[string]string{
		"name":      name,
		"education": p.Education,
		"location":  p.Location,
		"phone":     p.Phone,
		"linkedin":  p.LinkedIn,
		"image":     p.Image,
	}
	for k, v := range fields {
		if v != "" {
			set[k] = v
		}
	}
	return set
}

var _ repository.UserStore = (*UserStore)(nil)
