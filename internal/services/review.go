package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/cache"
	"github.com/aaravmahajanofficial/booknest/internal/errors"
	"github.com/aaravmahajanofficial/booknest/internal/metrics"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	repository "github.com/aaravmahajanofficial/booknest/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	AddReview(ctx context.Context, userID, bookID int64, req *models.AddReviewRequest) (*models.AddReviewResponse, error)
}

type reviewService struct {
	repo     repository.ReviewRepository
	cache    cache.Cache
	sanitize *bluemonday.Policy
}

func NewReviewService(repo repository.ReviewRepository, bookCache cache.Cache) ReviewService {
	return &reviewService{
		repo:     repo,
		cache:    bookCache,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// AddReview records a review without checking for earlier reviews by the same user. The comment is
// stripped of markup before it is stored.
func (s *reviewService) AddReview(ctx context.Context, userID, bookID int64, req *models.AddReviewRequest) (*models.AddReviewResponse, error) {

	if userID <= 0 {
		return nil, errors.UnauthorizedError("Unauthorized")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.ValidationError("Rating must be 1-5")
	}

	comment := strings.TrimSpace(s.sanitize.Sanitize(req.Comment))
	if comment == "" {
		return nil, errors.ValidationError("Comment is required")
	}

	review := &models.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  req.Rating,
		Comment: comment,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		if stdErrors.Is(err, repository.ErrReferenceNotFound) {
			return nil, errors.NotFoundError("Book not found")
		}

		return nil, errors.DatabaseError("Failed to add review").WithError(err)
	}

	metrics.ReviewCreated()
	invalidateBook(ctx, s.cache, bookID)

	middleware.LoggerFromContext(ctx).Info("Review added", slog.Int64("bookId", bookID), slog.Int64("reviewId", review.ID))

	return &models.AddReviewResponse{
		Message:  "Review added successfully",
		ReviewID: review.ID,
	}, nil
}
