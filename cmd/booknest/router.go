package main

import (
	"net/http"

	"github.com/aaravmahajanofficial/booknest/internal/api/handlers"
	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/metrics"
)

type routes struct {
	users   *handlers.UserHandler
	books   *handlers.BookHandler
	reviews *handlers.ReviewHandler
	cart    *handlers.CartHandler
	orders  *handlers.OrderHandler
	auth    *middleware.AuthMiddleware
	health  http.Handler
}

func newRouter(rt routes) *http.ServeMux {

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/test", handlers.Ping())
	routerMux.Handle("GET /health", rt.health)
	routerMux.Handle("GET /metrics", metrics.Handler())

	routerMux.HandleFunc("POST /api/users/register", rt.users.Register())
	routerMux.HandleFunc("POST /api/users/login", rt.users.Login())
	routerMux.HandleFunc("GET /api/users/profile", rt.auth.Authenticate(rt.users.Profile()))

	routerMux.HandleFunc("GET /api/books", rt.books.ListBooks())
	routerMux.HandleFunc("GET /api/books/{id}", rt.books.GetBook())
	routerMux.HandleFunc("POST /api/books", rt.books.CreateBook())
	routerMux.HandleFunc("PUT /api/books/{id}", rt.books.UpdateBook())
	routerMux.HandleFunc("DELETE /api/books/{id}", rt.books.DeleteBook())
	routerMux.HandleFunc("POST /api/books/{id}/reviews", rt.auth.Authenticate(rt.reviews.AddReview()))

	routerMux.HandleFunc("GET /api/cart", rt.auth.Authenticate(rt.cart.GetCart()))
	routerMux.HandleFunc("POST /api/cart/add", rt.auth.Authenticate(rt.cart.AddItem()))
	routerMux.HandleFunc("PUT /api/cart/update", rt.auth.Authenticate(rt.cart.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/cart/remove/{bookId}", rt.auth.Authenticate(rt.cart.RemoveItem()))

	routerMux.HandleFunc("GET /api/orders", rt.auth.Authenticate(rt.orders.ListOrders()))
	routerMux.HandleFunc("GET /api/orders/{id}", rt.auth.Authenticate(rt.orders.GetOrder()))
	routerMux.HandleFunc("POST /api/orders/checkout", rt.auth.Authenticate(rt.orders.Checkout()))

	return routerMux
}
