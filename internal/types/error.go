package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ApiError is the error taxonomy surfaced by the service layer.
// The global Fiber error handler maps it to a status code and JSON envelope.
type ApiError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Internal string `json:"internal,omitempty"`
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NotFound reports a missing entity or a scope mismatch.
func NotFound(message string) *ApiError {
	return &ApiError{Code: fiber.StatusNotFound, Message: message, Type: "not_found"}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *ApiError {
	return &ApiError{Code: fiber.StatusConflict, Message: message, Type: "conflict"}
}

// BadRequest reports a missing required field or malformed body.
func BadRequest(message string) *ApiError {
	return &ApiError{Code: fiber.StatusBadRequest, Message: message, Type: "bad_request"}
}

// Unauthorized reports a missing, invalid, or expired credential.
func Unauthorized(message string) *ApiError {
	return &ApiError{Code: fiber.StatusUnauthorized, Message: message, Type: "unauthorized"}
}

// Internal reports an unexpected store failure. The wrapped error string is
// carried for diagnostics and never replaces the human-readable message.
func Internal(message string, err error) *ApiError {
	apiErr := &ApiError{Code: fiber.StatusInternalServerError, Message: message, Type: "internal"}
	if err != nil {
		apiErr.Internal = err.Error()
	}
	return apiErr
}

func hasCode(err error, code int) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsNotFound reports whether err is a NotFound ApiError.
func IsNotFound(err error) bool {
	return hasCode(err, fiber.StatusNotFound)
}

// IsConflict reports whether err is a Conflict ApiError.
func IsConflict(err error) bool {
	return hasCode(err, fiber.StatusConflict)
}
