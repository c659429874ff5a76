package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// APIError is the error currency of the service. Code is the HTTP status the
// handler boundary responds with, Type is a machine-readable category.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Validation reports missing or malformed input.
func Validation(message string) *APIError {
	return &APIError{Code: fiber.StatusBadRequest, Message: message, Type: "validation"}
}

// Conflict reports a duplicate unique field during signup. The auth flows
// respond 400 to match the original API contract; domain record saves use
// ConflictSave (409) instead.
func Conflict(message string) *APIError {
	return &APIError{Code: fiber.StatusBadRequest, Message: message, Type: "conflict"}
}

// ConflictSave reports a natural-key duplicate on a domain record save.
func ConflictSave(message string) *APIError {
	return &APIError{Code: fiber.StatusConflict, Message: message, Type: "conflict"}
}

// Authentication reports a missing, invalid, or expired session.
func Authentication(message string) *APIError {
	return &APIError{Code: fiber.StatusUnauthorized, Message: message, Type: "authentication"}
}

// NotFound reports an absent record.
func NotFound(message string) *APIError {
	return &APIError{Code: fiber.StatusNotFound, Message: message, Type: "not_found"}
}

// Upstream reports a generative-provider failure.
func Upstream(message string) *APIError {
	return &APIError{Code: fiber.StatusBadGateway, Message: message, Type: "upstream"}
}

// Storage reports a database failure.
func Storage(err error) *APIError {
	return &APIError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "storage"}
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
