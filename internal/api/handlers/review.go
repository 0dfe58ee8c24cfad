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

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

func (h *ReviewHandler) AddReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := currentUser(w, r, logger)
		if !ok {
			return
		}

		bookID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.AddReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid review input", slog.Int64("bookId", bookID))
			return
		}

		resp, err := h.reviewService.AddReview(r.Context(), claims.ID, bookID, &req)
		if err != nil {
			logger.Warn("Failed to add review", slog.Int64("bookId", bookID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}
