package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strconv"

	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/cache"
	"github.com/aaravmahajanofficial/booknest/internal/errors"
	"github.com/aaravmahajanofficial/booknest/internal/metrics"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	repository "github.com/aaravmahajanofficial/booknest/internal/repositories"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

type CatalogService interface {
	ListBooks(ctx context.Context, category string) ([]*models.Book, error)
	GetBook(ctx context.Context, id int64) (*models.BookDetail, error)
	CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type catalogService struct {
	books   repository.BookRepository
	reviews repository.ReviewRepository
	cache   cache.Cache
	group   singleflight.Group
}

// NewCatalogService caches book details in bookCache when it is non-nil.
func NewCatalogService(books repository.BookRepository, reviews repository.ReviewRepository, bookCache cache.Cache) CatalogService {
	return &catalogService{
		books:   books,
		reviews: reviews,
		cache:   bookCache,
	}
}

var maxSeedRating = decimal.NewFromInt(5)

func (s *catalogService) ListBooks(ctx context.Context, category string) ([]*models.Book, error) {

	books, err := s.books.ListBooks(ctx, category)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch books").WithError(err)
	}

	return books, nil
}

// GetBook serves the detail view from cache when possible. Concurrent misses for the same book share
// one database load.
func (s *catalogService) GetBook(ctx context.Context, id int64) (*models.BookDetail, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.BookKey(id)

	if s.cache != nil {
		var cached models.BookDetail

		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Book cache read failed", slog.String("key", key), slog.Any("error", err))
		}

		metrics.BookCacheLookup(found)

		if found {
			return &cached, nil
		}
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.loadBookDetail(context.WithoutCancel(ctx), id)
	})
	if err != nil {
		return nil, err
	}

	detail := result.(*models.BookDetail)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, detail, 0); err != nil {
			logger.Warn("Book cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return detail, nil
}

func (s *catalogService) loadBookDetail(ctx context.Context, id int64) (*models.BookDetail, error) {

	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Book not found")
		}

		return nil, errors.DatabaseError("Failed to fetch book").WithError(err)
	}

	reviews, err := s.reviews.ListReviewsByBook(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch reviews").WithError(err)
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return &models.BookDetail{
		Book:          *book,
		Reviews:       reviews,
		AverageRating: averageRating(reviews),
		ReviewCount:   len(reviews),
	}, nil
}

// averageRating is the unrounded mean of the ratings, or 0 without reviews.
func averageRating(reviews []models.Review) float64 {

	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}

	return float64(sum) / float64(len(reviews))
}

func (s *catalogService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {

	if err := validateMoney(req.Price, req.Rating); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Rating:      req.Rating,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Genre:       req.Genre,
		Pages:       req.Pages,
		Language:    req.Language,
		Publisher:   req.Publisher,
	}

	if err := s.books.CreateBook(ctx, book); err != nil {
		return nil, errors.DatabaseError("Failed to create book").WithError(err)
	}

	return book, nil
}

func (s *catalogService) UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error) {

	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Book not found")
		}

		return nil, errors.DatabaseError("Failed to fetch book").WithError(err)
	}

	applyBookUpdate(book, req)

	if err := validateMoney(book.Price, book.Rating); err != nil {
		return nil, err
	}

	if err := s.books.UpdateBook(ctx, book); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Book not found")
		}

		return nil, errors.DatabaseError("Failed to update book").WithError(err)
	}

	invalidateBook(ctx, s.cache, id)

	return book, nil
}

func (s *catalogService) DeleteBook(ctx context.Context, id int64) error {

	if err := s.books.DeleteBook(ctx, id); err != nil {
		switch {
		case stdErrors.Is(err, sql.ErrNoRows):
			return errors.NotFoundError("Book not found")
		case stdErrors.Is(err, repository.ErrReferenced):
			return errors.ConflictError("Book is referenced by existing orders")
		default:
			return errors.DatabaseError("Failed to delete book").WithError(err)
		}
	}

	invalidateBook(ctx, s.cache, id)

	return nil
}

func applyBookUpdate(book *models.Book, req *models.UpdateBookRequest) {
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.Rating != nil {
		book.Rating = *req.Rating
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.ImageURL != nil {
		book.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		book.Stock = *req.Stock
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.Pages != nil {
		book.Pages = *req.Pages
	}
	if req.Language != nil {
		book.Language = *req.Language
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
}

func validateMoney(price, rating decimal.Decimal) error {
	if price.IsNegative() {
		return errors.AddValidationError("price", "must not be negative")
	}

	if rating.IsNegative() || rating.GreaterThan(maxSeedRating) {
		return errors.AddValidationError("rating", "must be between 0 and 5")
	}

	return nil
}

// invalidateBook drops the cached detail view. A failure only delays freshness until the TTL expires.
func invalidateBook(ctx context.Context, bookCache cache.Cache, id int64) {

	if bookCache == nil {
		return
	}

	if err := bookCache.Delete(ctx, cache.BookKey(id)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Book cache invalidation failed",
			slog.String("bookId", strconv.FormatInt(id, 10)), slog.Any("error", err))
	}
}
