package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/fixlane/repair-service/internal/domain"
	"github.com/fixlane/repair-service/internal/repository"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

const (
	reviewListLimit     = 100
	reviewMinCommentLen = 10
)

// ReviewInput is the public review submission.
type ReviewInput struct {
	CustomerName string
	Rating       int
	Comment      string
}

// ReviewService handles public customer feedback.
type ReviewService struct {
	reviews repository.ReviewRepository
}

// NewReviewService constructs the service.
func NewReviewService(reviews repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// ListReviews returns the latest reviews, newest first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListLatest(ctx, reviewListLimit)
}

// CreateReview validates and stores a review: non-blank name, comment of at
// least ten characters, rating within 1..5.
func (s *ReviewService) CreateReview(ctx context.Context, input ReviewInput) (*domain.Review, error) {
	name := strings.TrimSpace(input.CustomerName)
	comment := strings.TrimSpace(input.Comment)

	invalid := map[string]any{}
	if name == "" {
		invalid["customerName"] = "required"
	}
	if utf8.RuneCountInString(comment) < reviewMinCommentLen {
		invalid["comment"] = "too short"
	}
	if input.Rating < 1 || input.Rating > 5 {
		invalid["rating"] = "must be between 1 and 5"
	}
	if len(invalid) > 0 {
		return nil, apperrors.NewValidationError("invalid review", invalid)
	}

	review := &domain.Review{
		ID:           uuid.NewString(),
		CustomerName: name,
		Rating:       input.Rating,
		Comment:      comment,
		CreatedAt:    time.Now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
