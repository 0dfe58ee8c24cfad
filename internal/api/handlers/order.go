package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	service "github.com/aaravmahajanofficial/booknest/internal/services"
	"github.com/aaravmahajanofficial/booknest/internal/utils"
	"github.com/aaravmahajanofficial/booknest/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout godoc
//	@Summary		Check out the cart
//	@Description	Turns the caller's cart into a pending order, decrementing stock and emptying the cart in one transaction. The request has no body.
//	@Tags			Orders
//	@Produce		json
//	@Success		201	{object}	models.Order			"Order created"
//	@Failure		400	{object}	response.ErrorResponse	"Empty cart or insufficient stock"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/orders/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		order, err := h.orderService.Checkout(r.Context(), claims.ID)
		if err != nil {
			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.Int64("orderId", order.ID), slog.String("total", order.Total.StringFixed(2)))
		response.Success(w, http.StatusCreated, order)
	}
}

// ListOrders godoc
//	@Summary		List orders
//	@Description	Lists the caller's orders, newest first, with their items.
//	@Tags			Orders
//	@Produce		json
//	@Success		200	{array}		models.Order			"Orders"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), claims.ID)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if orders == nil {
			orders = []*models.Order{}
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		int					true	"Order ID"
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Order belongs to another user"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims.ID, id)
		if err != nil {
			logger.Warn("Failed to get order", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
