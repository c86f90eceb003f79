package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/reet/goalforge-api/internal/handlers"
	"github.com/reet/goalforge-api/internal/middleware"
)

func Setup(app *fiber.App, goalHandler *handlers.GoalHandler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/google", handlers.GoogleLogin)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)

	goals := protected.Group("/goals")
	goals.Post("/", goalHandler.CreateGoal)
	goals.Get("/", goalHandler.ListGoals)
	goals.Delete("/", goalHandler.DeleteAllGoals)
	goals.Get("/export", goalHandler.ExportGoals)
	goals.Post("/import", goalHandler.ImportGoals)
	goals.Put("/reorder", goalHandler.ReorderGoals)
	goals.Get("/:id", goalHandler.GetGoal)
	goals.Put("/:id", goalHandler.UpdateGoal)
	goals.Delete("/:id", goalHandler.DeleteGoal)
	goals.Post("/:id/start", goalHandler.StartGoal)
	goals.Post("/:id/pause", goalHandler.PauseGoal)
	goals.Post("/:id/resume", goalHandler.ResumeGoal)
	goals.Post("/:id/complete", goalHandler.CompleteGoal)
	goals.Post("/:id/progress", goalHandler.AddProgress)
}
