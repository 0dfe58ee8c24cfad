package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/booknest/internal/errors"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request. Clients only rely on Message.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data) //struct to json
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	if err := WriteJson(w, statusCode, data); err != nil {
		slog.Error("Failed to write response", slog.String("error", err.Error()))
	}
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	Success(w, statusCode, MessageResponse{Message: message})
}

// Error renders err. Application errors keep their status and message; anything else becomes a
// generic 500 so that driver or library messages never reach the client.
func Error(w http.ResponseWriter, err error) {

	statusCode := http.StatusInternalServerError
	body := ErrorResponse{Message: "Server error"}

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		body.Message = appErr.Message

		if appErr.Detail != "" {
			body.Details = []string{appErr.Detail}
		}
	}

	if statusCode >= http.StatusInternalServerError {
		body = ErrorResponse{Message: "Server error"}
	}

	if writeErr := WriteJson(w, statusCode, body); writeErr != nil {
		slog.Error("Failed to write error response", slog.String("error", writeErr.Error()))
	}
}

// package sends the list of errors
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	var errMsgs []string

	for _, err := range errs {

		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		case "gt", "gte":
			message = fmt.Sprintf("Field %s must be %s %s", err.Field(), comparison(err.Tag()), err.Param())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)

	}

	if writeErr := WriteJson(w, http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Details: errMsgs}); writeErr != nil {
		slog.Error("Failed to write validation response", slog.String("error", writeErr.Error()))
	}

}

func comparison(tag string) string {
	if tag == "gt" {
		return "greater than"
	}

	return "at least"
}
