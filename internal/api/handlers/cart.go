package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	service "github.com/aaravmahajanofficial/booknest/internal/services"
	"github.com/aaravmahajanofficial/booknest/internal/utils"
	"github.com/aaravmahajanofficial/booknest/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Lists the authenticated user's cart lines in insertion order. A user without a cart gets an empty list.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{array}		models.CartLine		"Cart lines"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		lines, err := h.cartService.GetCart(r.Context(), claims.ID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if lines == nil {
			lines = []models.CartLine{}
		}

		response.Success(w, http.StatusOK, lines)
	}
}

// AddItem godoc
//	@Summary		Add a book to the cart
//	@Description	Adds one copy of a book, creating the cart on first use. Adding a book already in the cart increments its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Book to add"
//	@Success		200		{object}	response.MessageResponse	"Book added to cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Book not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/cart/add [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		if err := h.cartService.AddItem(r.Context(), claims.ID, req.BookID); err != nil {
			logger.Error("Failed to add item to cart", slog.Int64("bookId", req.BookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int64("bookId", req.BookID))
		response.Message(w, http.StatusOK, "Book added to cart")
	}
}

// UpdateQuantity godoc
//	@Summary		Set a cart line quantity
//	@Description	Sets the quantity of a line already in the cart. Zero removes the line. A book not in the cart is left alone.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Book and new quantity"
//	@Success		200		{object}	response.MessageResponse	"Quantity updated"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/cart/update [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart update input")
			return
		}

		if err := h.cartService.UpdateQuantity(r.Context(), claims.ID, req.BookID, req.Quantity); err != nil {
			logger.Error("Failed to update cart quantity", slog.Int64("bookId", req.BookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Message(w, http.StatusOK, "Quantity updated")
	}
}

// RemoveItem godoc
//	@Summary		Remove a book from the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			bookId	path		int						true	"Book ID"
//	@Success		200		{object}	response.MessageResponse	"Item removed"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid book ID"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/cart/remove/{bookId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		bookID, err := utils.ParseID(r, "bookId")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), claims.ID, bookID); err != nil {
			logger.Error("Failed to remove cart item", slog.Int64("bookId", bookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Message(w, http.StatusOK, "Item removed")
	}
}
