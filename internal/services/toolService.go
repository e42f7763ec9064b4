package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/arzan03/ElectricTools/internal/cache"
	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const toolCacheTTL = 5 * time.Minute

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	PutImage(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (string, error)
}

type ToolService struct {
	tools  repository.ToolStore
	cache  cache.Cache
	images ImageUploader
}

// NewToolService wires the catalog. A nil cache disables caching and a
// nil uploader disables image uploads.
func NewToolService(tools repository.ToolStore, c cache.Cache, images ImageUploader) *ToolService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ToolService{tools: tools, cache: c, images: images}
}

func (s *ToolService) List(ctx context.Context, q models.ToolQuery) ([]models.Tool, error) {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Limit < 0 {
		q.Limit = 0
	}
	q.Search = strings.TrimSpace(q.Search)
	// page*limit must fit the store's skip
	if q.Limit > 0 && int64(q.Page) > math.MaxInt64/int64(q.Limit) {
		return []models.Tool{}, nil
	}
	return s.tools.Find(ctx, q)
}

func (s *ToolService) Count(ctx context.Context, search string) (int64, error) {
	return s.tools.Count(ctx, strings.TrimSpace(search))
}

func (s *ToolService) Get(ctx context.Context, id string) (*models.Tool, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var cached models.Tool
	if s.cache.Get(ctx, toolKey(objID), &cached) {
		return &cached, nil
	}

	tool, err := s.tools.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, toolKey(objID), tool, toolCacheTTL)
	return tool, nil
}

// Create returns ErrConflict when a tool with the same name exists.
func (s *ToolService) Create(ctx context.Context, tool models.Tool) (*models.Tool, error) {
	if err := validateTool(&tool); err != nil {
		return nil, err
	}
	tool.ID = primitive.NilObjectID
	if err := s.tools.Insert(ctx, &tool); err != nil {
		return nil, err
	}
	return &tool, nil
}

// Update replaces the tool with the given id, inserting it if absent.
func (s *ToolService) Update(ctx context.Context, id string, tool models.Tool) (*models.Tool, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := validateTool(&tool); err != nil {
		return nil, err
	}
	if err := s.tools.Upsert(ctx, objID, &tool); err != nil {
		return nil, err
	}
	s.invalidate(ctx, objID)
	tool.ID = objID
	return &tool, nil
}

func (s *ToolService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.tools.Delete(ctx, objID); err != nil {
		return err
	}
	s.invalidate(ctx, objID)
	return nil
}

// SetImage uploads an image for an existing tool and stores its URL.
func (s *ToolService) SetImage(ctx context.Context, id, filename string, r io.Reader, size int64, contentType string) (*models.Tool, error) {
	if s.images == nil {
		return nil, ErrStorageDisabled
	}
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.tools.FindByID(ctx, objID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", ErrInvalidInput, contentType)
	}

	url, err := s.images.PutImage(ctx, "tools/"+objID.Hex(), filename, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := s.tools.SetImage(ctx, objID, url); err != nil {
		return nil, err
	}
	s.invalidate(ctx, objID)
	return s.tools.FindByID(ctx, objID)
}

func (s *ToolService) invalidate(ctx context.Context, id primitive.ObjectID) {
	_ = s.cache.Del(ctx, toolKey(id))
}

func validateTool(t *models.Tool) error {
	t.Name = strings.TrimSpace(t.Name)
	switch {
	case t.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case t.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case t.Quantity < 0 || t.MinOrder < 0:
		return fmt.Errorf("%w: quantities must not be negative", ErrInvalidInput)
	}
	return nil
}

func toolKey(id primitive.ObjectID) string {
	return "tool:" + id.Hex()
}
