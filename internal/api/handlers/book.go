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

type BookHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewBookHandler(catalogService service.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService, validator: validator.New()}
}

// ListBooks serves GET /api/books, optionally filtered with ?category=.
func (h *BookHandler) ListBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		category := r.URL.Query().Get("category")

		books, err := h.catalogService.ListBooks(r.Context(), category)
		if err != nil {
			logger.Error("Failed to list books", slog.String("category", category), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if books == nil {
			books = []*models.Book{}
		}

		response.Success(w, http.StatusOK, books)
	}
}

func (h *BookHandler) GetBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		detail, err := h.catalogService.GetBook(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}

func (h *BookHandler) CreateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create book input")
			return
		}

		book, err := h.catalogService.CreateBook(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create book", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book created", slog.Int64("bookId", book.ID))
		response.Success(w, http.StatusCreated, book)
	}
}

func (h *BookHandler) UpdateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update book input", slog.Int64("bookId", id))
			return
		}

		book, err := h.catalogService.UpdateBook(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book updated", slog.Int64("bookId", id))
		response.Success(w, http.StatusOK, book)
	}
}

func (h *BookHandler) DeleteBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteBook(r.Context(), id); err != nil {
			logger.Error("Failed to delete book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book deleted", slog.Int64("bookId", id))
		response.Message(w, http.StatusOK, "Book deleted successfully")
	}
}
