package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a record or list payload with the given status
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// MessageResponse sends a success envelope for operations without a record payload
func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   message,
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponse sends a standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
	Internal  string `json:"internal,omitempty"`
}

// MessageResponseStruct defines the schema for message-only success responses
type MessageResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}
