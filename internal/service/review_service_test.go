package service

import (
	"context"
	"testing"

	"github.com/fixlane/repair-service/internal/domain"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

type fakeReviewRepo struct {
	reviews   []domain.Review
	lastLimit int
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) ListLatest(_ context.Context, limit int) ([]domain.Review, error) {
	f.lastLimit = limit
	return f.reviews, nil
}

func TestCreateReviewStoresTrimmedFields(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo)

	review, err := svc.CreateReview(context.Background(), ReviewInput{
		CustomerName: "  Dana Reyes  ",
		Rating:       5,
		Comment:      "  Fast turnaround, fair price.  ",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.ID == "" || review.CreatedAt.IsZero() {
		t.Fatalf("identity fields missing: %+v", review)
	}
	if review.CustomerName != "Dana Reyes" {
		t.Fatalf("name not trimmed: %q", review.CustomerName)
	}
	if review.Comment != "Fast turnaround, fair price." {
		t.Fatalf("comment not trimmed: %q", review.Comment)
	}
	if len(repo.reviews) != 1 {
		t.Fatalf("review not persisted")
	}
}

func TestCreateReviewRejectsInvalidInput(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{})

	cases := []struct {
		name  string
		input ReviewInput
	}{
		{"blank name", ReviewInput{CustomerName: "   ", Rating: 4, Comment: "Great service overall"}},
		{"short comment", ReviewInput{CustomerName: "Dana", Rating: 4, Comment: "Too short"}},
		{"whitespace-padded short comment", ReviewInput{CustomerName: "Dana", Rating: 4, Comment: "  ok stuff   "}},
		{"rating zero", ReviewInput{CustomerName: "Dana", Rating: 0, Comment: "Great service overall"}},
		{"rating above five", ReviewInput{CustomerName: "Dana", Rating: 6, Comment: "Great service overall"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateReview(context.Background(), tc.input)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if apperrors.ToDomainError(err).Code != "VALIDATION_FAILED" {
				t.Fatalf("expected VALIDATION_FAILED, got %s", apperrors.ToDomainError(err).Code)
			}
		})
	}
}

func TestListReviewsCapsAtLatestHundred(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo)

	if _, err := svc.ListReviews(context.Background()); err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if repo.lastLimit != 100 {
		t.Fatalf("expected limit 100, got %d", repo.lastLimit)
	}
}
