// Package middleware provides the middleware for the Echo instance
package middleware

import (
	"net/http"
	"strings"

	"github.com/akinsira/guestbookapi/internal/service"
	"github.com/akinsira/guestbookapi/pkg/utils/response"
	"github.com/labstack/echo/v4"
)

// BearerToken extracts the bearer token from the Authorization header, or
// returns an empty string when none is presented.
func BearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// RequireAdmin creates a middleware that rejects requests without a live
// admin session token.
func RequireAdmin(authService *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := BearerToken(c)
			if tok == "" || !authService.Validate(tok) {
				return response.Error(c, http.StatusUnauthorized, "Invalid or expired session")
			}
			return next(c)
		}
	}
}
