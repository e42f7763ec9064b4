package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arzan03/ElectricTools/internal/models"
	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviews repository.ReviewStore
}

func NewReviewService(reviews repository.ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	review.Text = strings.TrimSpace(review.Text)
	switch {
	case review.Text == "":
		return nil, fmt.Errorf("%w: review text is required", ErrInvalidInput)
	case review.Rating < 1 || review.Rating > 5:
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	review.ID = primitive.NilObjectID
	review.Email = normalizeEmail(review.Email)
	if err := s.reviews.Insert(ctx, &review); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.reviews.List(ctx)
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.reviews.Delete(ctx, objID)
}
