package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/errors"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/aaravmahajanofficial/booknest/internal/utils/response"
)

// currentUser returns the verified claims or writes a 401. Routes behind the auth middleware always
// have them.
func currentUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*models.Claims, bool) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.ID <= 0 {
		logger.Warn("Unauthorized access attempt: missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}

// Ping answers the liveness check at GET /api/test.
func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, "Server is running")
	}
}
