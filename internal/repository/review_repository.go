package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fixlane/repair-service/internal/domain"
)

// ReviewRepository handles persistence for customer reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListLatest(ctx context.Context, limit int) ([]domain.Review, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates the repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (id, customer_name, rating, comment, created_at)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.CustomerName,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)
	return err
}

func (r *reviewRepository) ListLatest(ctx context.Context, limit int) ([]domain.Review, error) {
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(`
        SELECT id, customer_name, rating, comment, created_at
        FROM reviews ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.CustomerName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, review)
	}
	return result, rows.Err()
}
