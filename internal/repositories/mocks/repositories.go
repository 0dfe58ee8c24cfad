// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type BookRepository struct {
	mock.Mock
}

func (m *BookRepository) ListBooks(ctx context.Context, category string) ([]*models.Book, error) {
	args := m.Called(ctx, category)

	books, _ := args.Get(0).([]*models.Book)

	return books, args.Error(1)
}

func (m *BookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)

	book, _ := args.Get(0).(*models.Book)

	return book, args.Error(1)
}

func (m *BookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *BookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *BookRepository) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepository) ListReviewsByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	args := m.Called(ctx, bookID)

	reviews, _ := args.Get(0).([]models.Review)

	return reviews, args.Error(1)
}

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetItemsByUserID(ctx context.Context, userID int64) ([]models.CartLine, error) {
	args := m.Called(ctx, userID)

	lines, _ := args.Get(0).([]models.CartLine)

	return lines, args.Error(1)
}

func (m *CartRepository) AddItem(ctx context.Context, userID, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *CartRepository) SetQuantity(ctx context.Context, userID, bookID int64, quantity int) error {
	args := m.Called(ctx, userID, bookID, quantity)
	return args.Error(0)
}

func (m *CartRepository) RemoveItem(ctx context.Context, userID, bookID int64) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	args := m.Called(ctx, userID)

	orders, _ := args.Get(0).([]*models.Order)

	return orders, args.Error(1)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, orderID)

	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}

func (m *OrderRepository) CreateOrderFromCart(ctx context.Context, userID int64) (*models.Order, error) {
	args := m.Called(ctx, userID)

	order, _ := args.Get(0).(*models.Order)

	return order, args.Error(1)
}
