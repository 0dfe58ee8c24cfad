package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/errors"
	"github.com/aaravmahajanofficial/booknest/internal/metrics"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	repository "github.com/aaravmahajanofficial/booknest/internal/repositories"
)

type OrderService interface {
	ListOrders(ctx context.Context, userID int64) ([]*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error)
	Checkout(ctx context.Context, userID int64) (*models.Order, error)
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {

	orders, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if orders == nil {
		orders = []*models.Order{}
	}

	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found")
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.UserID != userID {
		middleware.LoggerFromContext(ctx).Warn("Order access denied", slog.Int64("orderId", orderID))
		return nil, errors.ForbiddenError("You do not have access to this order")
	}

	return order, nil
}

// Checkout converts the user's cart into a pending order priced at current book prices.
func (s *orderService) Checkout(ctx context.Context, userID int64) (*models.Order, error) {

	order, err := s.repo.CreateOrderFromCart(ctx, userID)
	if err != nil {
		switch {
		case stdErrors.Is(err, repository.ErrEmptyCart):
			return nil, errors.BadRequestError("Cart is empty")
		case stdErrors.Is(err, repository.ErrInsufficientStock):
			return nil, errors.BadRequestError("Insufficient stock").WithDetail(err.Error())
		default:
			return nil, errors.DatabaseError("Failed to place order").WithError(err)
		}
	}

	metrics.OrderPlaced()
	middleware.LoggerFromContext(ctx).Info("Order placed",
		slog.Int64("orderId", order.ID), slog.String("total", order.Total.StringFixed(2)))

	return order, nil
}
