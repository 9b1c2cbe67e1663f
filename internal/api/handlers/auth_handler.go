// Package handlers contains the handlers for the API
package handlers

import (
	"errors"
	"net/http"

	"github.com/akinsira/guestbookapi/internal/api/middleware"
	"github.com/akinsira/guestbookapi/internal/service"
	"github.com/akinsira/guestbookapi/pkg/utils/response"
	"github.com/akinsira/guestbookapi/pkg/utils/zaplogger"
	"github.com/labstack/echo/v4"
)

// AuthHandler is the handler for the auth API
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler for the auth API
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates the admin and returns a session token
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return response.Error(c, http.StatusBadRequest, "Username and password required")
	}

	tok, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		}
		zaplogger.Error("login failed", zaplogger.Fields{"error": err.Error()})
		return response.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return response.Success(c, http.StatusOK, map[string]interface{}{"token": tok})
}

// Logout destroys the presented session. Always succeeds, unknown tokens
// included.
func (h *AuthHandler) Logout(c echo.Context) error {
	if tok := middleware.BearerToken(c); tok != "" {
		h.service.Logout(tok)
	}
	return response.Success(c, http.StatusOK, nil)
}

// Verify confirms the presented session is still live. The RequireAdmin
// middleware has already rejected anything else by the time this runs.
func (h *AuthHandler) Verify(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil)
}
