package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)

	resp, _ := args.Get(0).(*models.AuthResponse)

	return resp, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)

	resp, _ := args.Get(0).(*models.AuthResponse)

	return resp, args.Error(1)
}

func (m *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListBooks(ctx context.Context, category string) ([]*models.Book, error) {
	args := m.Called(ctx, category)

	books, _ := args.Get(0).([]*models.Book)

	return books, args.Error(1)
}

func (m *CatalogService) GetBook(ctx context.Context, id int64) (*models.BookDetail, error) {
	args := m.Called(ctx, id)

	detail, _ := args.Get(0).(*models.BookDetail)

	return detail, args.Error(1)
}

func (m *CatalogService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, req)

	book, _ := args.Get(0).(*models.Book)

	return book, args.Error(1)
}

func (m *CatalogService) UpdateBook(ctx context.Context, id int64, req *models.UpdateBookRequest) (*models.Book, error) {
	args := m.Called(ctx, id, req)

	book, _ := args.Get(0).(*models.Book)

	return book, args.Error(1)
}

func (m *CatalogService) DeleteBook(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type ReviewService struct {
	mock.Mock
}

func (m *ReviewService) AddReview(ctx context.Context, userID, bookID int64, req *models.AddReviewRequest) (*models.AddReviewResponse, error) {
	args := m.Called(ctx, userID, bookID, req)

	resp, _ := args.Get(0).(*models.AddReviewResponse)

	return resp, args.Error(1)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID int64) ([]models.CartLine, error) {
	args := m.Called(ctx, userID)

	lines, _ := args.Get(0).([]models.CartLine)

	return lines, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID, bookID int64) error {
	return m.Called(ctx, userID, bookID).Error(0)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID, bookID int64, quantity *int) error {
	return m.Called(ctx, userID, bookID, quantity).Error(0)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, bookID int64) error {
	return m.Called(ctx, userID, bookID).Error(0)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	args := m.Called(ctx, userID)

	orders, _ := args.Get(0).([]*models.Order)

	return orders, args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderService) Checkout(ctx context.Context, userID int64) (*models.Order, error) {
	args := m.Called(ctx, userID)

	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}
