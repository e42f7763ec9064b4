package db

import (
	"context"
	"fmt"
	"regexp"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ToolStore struct {
	collection *mongo.Collection
}

func NewToolStore(database *mongo.Database) *ToolStore {
	return &ToolStore{collection: database.Collection(toolsCollection)}
}

func (s *ToolStore) Insert(ctx context.Context, tool *models.Tool) error {
	if tool.ID.IsZero() {
		tool.ID = primitive.NewObjectID()
	}
	_, err := s.collection.InsertOne(ctx, tool)
	return translate(err)
}

func (s *ToolStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tool, error) {
	var tool models.Tool
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tool); err != nil {
		return nil, translate(err)
	}
	return &tool, nil
}

func (s *ToolStore) Find(ctx context.Context, q models.ToolQuery) ([]models.Tool, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetSkip(int64(q.Page) * int64(q.Limit)).SetLimit(int64(q.Limit))
	}

	cursor, err := s.collection.Find(ctx, nameFilter(q.Search), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tools: %w", err)
	}
	defer cursor.Close(ctx)

	tools := []models.Tool{}
	if err := cursor.All(ctx, &tools); err != nil {
		return nil, fmt.Errorf("error decoding tools: %w", err)
	}
	return tools, nil
}

func (s *ToolStore) Count(ctx context.Context, search string) (int64, error) {
	return s.collection.CountDocuments(ctx, nameFilter(search))
}

func (s *ToolStore) Upsert(ctx context.Context, id primitive.ObjectID, tool *models.Tool) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":        tool.Name,
			"price":       tool.Price,
			"quantity":    tool.Quantity,
			"minOrder":    tool.MinOrder,
			"description": tool.Description,
			"rating":      tool.Rating,
			"image":       tool.Image,
		}},
		options.Update().SetUpsert(true),
	)
	return translate(err)
}

func (s *ToolStore) SetImage(ctx context.Context, id primitive.ObjectID, url string) error {
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"image": url}})
	if err != nil {
		return fmt.Errorf("failed to save tool image: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *ToolStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// nameFilter matches a case-insensitive substring of the tool name.
func nameFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}}
}

var _ repository.ToolStore = (*ToolStore)(nil)
