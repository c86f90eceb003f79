package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/reet/goalforge-api/internal/config"
	"github.com/reet/goalforge-api/internal/database"
	"github.com/reet/goalforge-api/internal/goals"
	"github.com/reet/goalforge-api/internal/handlers"
	"github.com/reet/goalforge-api/internal/middleware"
	"github.com/reet/goalforge-api/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	middleware.Init(cfg.JWTSecret)
	handlers.InitAuth(cfg.GoogleClientIDs)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	goalService := goals.NewService(goals.NewStore(database.DB))
	goalHandler := handlers.NewGoalHandler(goalService)

	app := fiber.New(fiber.Config{
		AppName: "goalforge-api",
	})
	app.Use(logger.New())

	routes.Setup(app, goalHandler)

	log.Printf("Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
