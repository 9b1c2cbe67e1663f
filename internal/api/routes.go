// Package api wires the HTTP routes for the Guestbook API
package api

import (
	"github.com/akinsira/guestbookapi/internal/api/handlers"
	"github.com/akinsira/guestbookapi/internal/api/middleware"
	"github.com/akinsira/guestbookapi/internal/config"
	"github.com/akinsira/guestbookapi/internal/service"
	"github.com/labstack/echo/v4"
)

// SetupRoutes configures the routes for the API
func SetupRoutes(e *echo.Echo, cfg *config.Config, authService *service.AuthService, messageService *service.MessageService) {
	systemHandler := handlers.NewSystemHandler(cfg)
	e.GET("/health", systemHandler.Health)

	api := e.Group("/api")

	// Auth routes
	authHandler := handlers.NewAuthHandler(authService)
	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/verify", authHandler.Verify, middleware.RequireAdmin(authService))

	// Message routes; reads are public, mutations resolve the actor in the
	// handler since they accept either an admin session or a submitter token
	messageHandler := handlers.NewMessageHandler(messageService, authService)
	messageGroup := api.Group("/messages")
	messageGroup.GET("", messageHandler.ListMessages)
	messageGroup.POST("", messageHandler.CreateMessage)
	messageGroup.PUT("/:id", messageHandler.UpdateMessage)
	messageGroup.DELETE("/:id", messageHandler.DeleteMessage)
}
