package main

import (
	"os"

	"shopadmin/config"
	"shopadmin/db"
	"shopadmin/logger"
	"shopadmin/metrics"
	"shopadmin/routes"
	"shopadmin/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Get().Sync()

	// Initialize database
	db.InitDatabase(cfg.DBPath)

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat(cfg.UploadDir); os.IsNotExist(err) {
		os.MkdirAll(cfg.UploadDir, 0755)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})

	// Middleware
	app.Use(logger.Middleware())
	app.Use(metrics.Middleware())
	app.Use(cors.New())

	// Serve static files
	app.Static("/uploads", cfg.UploadDir)

	// Setup routes
	routes.SetupRoutes(app, storage.New(cfg.UploadDir))

	// Start server
	logger.Get().Info("Starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Get().Fatal("Server stopped", zap.Error(err))
	}
}
