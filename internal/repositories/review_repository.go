package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/aaravmahajanofficial/booknest/internal/utils"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviewsByBook(ctx context.Context, bookID int64) ([]models.Review, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

// CreateReview inserts unconditionally. A book or user that does not exist yields ErrReferenceNotFound.
func (r *reviewRepository) CreateReview(ctx context.Context, review *models.Review) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO reviews (user_id, book_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, review.UserID, review.BookID, review.Rating, review.Comment).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrReferenceNotFound
		}

		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// ListReviewsByBook returns the reviews newest first, each with the reviewer's name.
func (r *reviewRepository) ListReviewsByBook(ctx context.Context, bookID int64) ([]models.Review, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.comment, COALESCE(u.name, ''), r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC, r.id DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}

	for rows.Next() {
		var review models.Review

		if err := rows.Scan(&review.ID, &review.UserID, &review.BookID, &review.Rating, &review.Comment, &review.Name, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
