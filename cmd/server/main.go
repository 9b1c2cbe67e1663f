// Package main is the entry point for the Guestbook API
package main

import (
	"fmt"
	"log"

	"github.com/akinsira/guestbookapi/internal/api"
	"github.com/akinsira/guestbookapi/internal/api/middleware"
	"github.com/akinsira/guestbookapi/internal/config"
	"github.com/akinsira/guestbookapi/internal/repository"
	"github.com/akinsira/guestbookapi/internal/service"
	"github.com/akinsira/guestbookapi/pkg/utils/zaplogger"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Print the configuration
	fmt.Println(cfg.String())

	// Setup logger
	defer zaplogger.Sync()
	zaplogger.SetLogLevel(cfg.ServerLogLevel)

	zaplogger.Info(cfg.AppName + " initialized")

	// Resolve the admin identity
	creds, err := service.ResolveAdminCredentials(cfg)
	if err != nil {
		zaplogger.Fatal("Failed to resolve admin credentials", zaplogger.Fields{"error": err.Error()})
	}

	// Setup the message store
	messageRepo := repository.NewMessageRepository(cfg.MessagesFile)
	if err := messageRepo.EnsureFile(); err != nil {
		zaplogger.Fatal("Failed to initialize messages file", zaplogger.Fields{"error": err.Error()})
	}
	zaplogger.Info("Messages file ready", zaplogger.Fields{"path": cfg.MessagesFile})

	authService := service.NewAuthService(creds)
	messageService := service.NewMessageService(messageRepo)

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Setup middleware
	middleware.SetupLoggerMiddleware(e)

	// Setup routes
	api.SetupRoutes(e, cfg, authService, messageService)

	// Setup and start cron jobs
	cronService := service.NewCronService(authService)
	cronService.Start()
	defer cronService.Stop()

	// Start the server
	startServer(e, cfg)
}

// startServer starts the Echo server on the specified port
func startServer(e *echo.Echo, cfg *config.Config) {
	port := cfg.ServerPort
	if port == "" {
		port = "3000"
	}
	zaplogger.Info("SERVER STARTED ON PORT " + port)
	e.Logger.Fatal(e.Start(":" + port))
}
