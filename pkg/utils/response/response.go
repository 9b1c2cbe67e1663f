// Package response contains response utility functions and types
package response

import (
	"github.com/labstack/echo/v4"
)

// ErrorBody is the wire shape of every error response
type ErrorBody struct {
	Error string `json:"error"`
}

// Success sends a `{success: true}` JSON response merged with any extra
// fields
func Success(c echo.Context, httpStatus int, extra map[string]interface{}) error {
	body := map[string]interface{}{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(httpStatus, body)
}

// Error sends an error JSON response
func Error(c echo.Context, httpStatus int, message string) error {
	return c.JSON(httpStatus, ErrorBody{Error: message})
}
