package service

import (
	"context"
	stdErrors "errors"

	"github.com/aaravmahajanofficial/booknest/internal/errors"
	"github.com/aaravmahajanofficial/booknest/internal/metrics"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	repository "github.com/aaravmahajanofficial/booknest/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID int64) ([]models.CartLine, error)
	AddItem(ctx context.Context, userID, bookID int64) error
	UpdateQuantity(ctx context.Context, userID, bookID int64, quantity *int) error
	RemoveItem(ctx context.Context, userID, bookID int64) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

// GetCart never returns a nil slice so an empty cart renders as [].
func (s *cartService) GetCart(ctx context.Context, userID int64) ([]models.CartLine, error) {

	lines, err := s.repo.GetItemsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if lines == nil {
		lines = []models.CartLine{}
	}

	return lines, nil
}

func (s *cartService) AddItem(ctx context.Context, userID, bookID int64) (err error) {

	defer func() { metrics.CartOperation("add", err) }()

	if bookID <= 0 {
		return errors.ValidationError("Book ID is required")
	}

	if err := s.repo.AddItem(ctx, userID, bookID); err != nil {
		if stdErrors.Is(err, repository.ErrReferenceNotFound) {
			return errors.NotFoundError("Book not found")
		}

		return errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return nil
}

// UpdateQuantity overwrites the quantity of an existing line; a quantity of zero removes it. Missing
// lines are left alone.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, bookID int64, quantity *int) (err error) {

	defer func() { metrics.CartOperation("update", err) }()

	if bookID <= 0 || quantity == nil {
		return errors.ValidationError("Book ID and quantity are required")
	}

	if *quantity < 0 {
		return errors.AddValidationError("quantity", "must not be negative")
	}

	if *quantity == 0 {
		if err := s.repo.RemoveItem(ctx, userID, bookID); err != nil {
			return errors.DatabaseError("Failed to update cart").WithError(err)
		}

		return nil
	}

	if err := s.repo.SetQuantity(ctx, userID, bookID, *quantity); err != nil {
		return errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, bookID int64) (err error) {

	defer func() { metrics.CartOperation("remove", err) }()

	if bookID <= 0 {
		return errors.ValidationError("Book ID is required")
	}

	if err := s.repo.RemoveItem(ctx, userID, bookID); err != nil {
		return errors.DatabaseError("Failed to remove item from cart").WithError(err)
	}

	return nil
}
