package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", handler.Register)
	users.Post("/login", handler.Login)
	users.Get("/profile", handler.AuthRequired, handler.Profile)

	chat := api.Group("/chat", handler.AuthRequired)
	chat.Post("", handler.Chat)
	chat.Get("", handler.ChatHistory)
	chat.Post("/voice", handler.ChatVoice)

	period := api.Group("/period", handler.AuthRequired)
	period.Post("", handler.LogPeriod)
	period.Get("", handler.ListPeriods)
	period.Get("/latest", handler.LatestPeriod)
}
