package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fixlane/repair-service/internal/api/dto"
	"github.com/fixlane/repair-service/internal/service"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

// ReviewsHandler manages public customer feedback endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService}
}

// ListReviews GET /api/reviews.
func (h *ReviewsHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reviews})
}

// CreateReview POST /api/reviews.
func (h *ReviewsHandler) CreateReview(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.CreateReview(c.Context(), service.ReviewInput{
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": review})
}
