package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ravichandra178/mynitrends/internal/api/handlers"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Trend     *handlers.TrendHandler
	Post      *handlers.PostHandler
	Settings  *handlers.SettingsHandler
	Facebook  *handlers.FacebookHandler
	AutoReply *handlers.AutoReplyHandler
}

func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Health)

	api := app.Group("/api")

	api.Get("/trends", h.Trend.ListTrends)
	api.Post("/trends", h.Trend.CreateTrend)
	api.Post("/generate-trends", h.Trend.GenerateTrends)

	api.Get("/posts", h.Post.ListPosts)
	api.Patch("/posts/:id", h.Post.UpdatePost)
	api.Delete("/posts/:id", h.Post.RemovePost)
	api.Get("/posts/:id/history", h.Post.PostHistory)
	api.Post("/generate-post", h.Post.GeneratePost)

	api.Get("/settings", h.Settings.GetSettings)
	api.Patch("/settings", h.Settings.UpdateSettings)

	api.Post("/post-to-facebook", h.Facebook.PostToFacebook)
	api.Post("/fetch-engagement", h.Facebook.FetchEngagement)
	api.Post("/test-connection", h.Facebook.TestConnection)
	api.Post("/auto-post", h.Facebook.AutoPost)

	api.Post("/generate-autoreply", h.AutoReply.GenerateAutoReply)
}
