package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/openmol/drugforge/internal/config"
	"github.com/openmol/drugforge/internal/database"
	"github.com/openmol/drugforge/internal/server"
	"github.com/openmol/drugforge/internal/services"

	_ "github.com/openmol/drugforge/docs/api" // Swagger docs
)

// @title DrugForge API
// @version 1.0.0
// @description REST backend for drug-discovery research: accounts, AI molecule generation, and per-user artifact persistence
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/openmol/drugforge

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	gemini := services.NewGeminiClient(cfg)
	app := server.New(cfg, db, gemini)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
