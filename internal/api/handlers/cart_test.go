package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/booknest/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/booknest/internal/errors"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/aaravmahajanofficial/booknest/internal/services/mocks"
	"github.com/aaravmahajanofficial/booknest/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetCart(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success - Lines", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/cart", nil, 1, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("GetCart", mock.Anything, int64(1)).Return([]models.CartLine{
			{BookID: 7, Title: "Dune", Author: "Frank Herbert", Price: decimal.RequireFromString("9.99"), Quantity: 2},
		}, nil).Once()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"book_id":7,"title":"Dune","author":"Frank Herbert","price":"9.99","quantity":2}]`, rr.Body.String())
	})

	t.Run("Success - No cart renders []", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/cart", nil, 2, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("GetCart", mock.Anything, int64(2)).Return(nil, nil).Once()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("Failure - Unauthenticated", func(t *testing.T) {
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/cart", nil, nil)
		rr := httptest.NewRecorder()

		cartHandler.GetCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	mockCartService.AssertExpectations(t)
}

func TestAddItem(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/add", strings.NewReader(`{"bookId":7}`), 1, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, int64(1), int64(7)).Return(nil).Once()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Book added to cart"}`, rr.Body.String())
	})

	t.Run("Failure - Missing book id", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/add", strings.NewReader(`{}`), 1, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown book", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/add", strings.NewReader(`{"bookId":404}`), 1, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, int64(1), int64(404)).Return(appErrors.NotFoundError("Book not found")).Once()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - Database error", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/cart/add", strings.NewReader(`{"bookId":8}`), 1, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, int64(1), int64(8)).Return(appErrors.DatabaseError("Failed to add item to cart")).Once()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"message":"Server error"}`, rr.Body.String())
	})

	mockCartService.AssertExpectations(t)
}

func TestUpdateQuantity(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/cart/update", strings.NewReader(`{"bookId":7,"quantity":3}`), 1, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("UpdateQuantity", mock.Anything, int64(1), int64(7), mock.MatchedBy(func(q *int) bool {
			return q != nil && *q == 3
		})).Return(nil).Once()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Quantity updated"}`, rr.Body.String())
	})

	t.Run("Success - Zero quantity is passed through", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/cart/update", strings.NewReader(`{"bookId":7,"quantity":0}`), 1, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("UpdateQuantity", mock.Anything, int64(1), int64(7), mock.MatchedBy(func(q *int) bool {
			return q != nil && *q == 0
		})).Return(nil).Once()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Missing quantity", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/cart/update", strings.NewReader(`{"bookId":7}`), 1, nil)
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Negative quantity", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/cart/update", strings.NewReader(`{"bookId":7,"quantity":-1}`), 1, nil)
		rr := httptest.NewRecorder()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	mockCartService.AssertExpectations(t)
}

func TestRemoveItem(t *testing.T) {
	mockCartService := new(mocks.CartService)
	cartHandler := handlers.NewCartHandler(mockCartService)

	t.Run("Success", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/cart/remove/7", nil, 1, map[string]string{"bookId": "7"})
		rr := httptest.NewRecorder()

		mockCartService.On("RemoveItem", mock.Anything, int64(1), int64(7)).Return(nil).Once()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Item removed"}`, rr.Body.String())
	})

	t.Run("Failure - Invalid book id", func(t *testing.T) {
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/cart/remove/x", nil, 1, map[string]string{"bookId": "x"})
		rr := httptest.NewRecorder()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	mockCartService.AssertExpectations(t)
}
