package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/guarani-living/leads-api/internal/application/leads"
	"github.com/guarani-living/leads-api/pkg/logger"
)

// Router registra el endpoint de la planilla: un solo URL, ruteado por
// método (GET=read-all, POST=acciones, OPTIONS=preflight).
func Router(app *fiber.App, uc *leads.UseCase, log *logger.Logger) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	h := NewLeadHandler(uc, log)
	app.Get("/", h.ReadAll)
	app.Post("/", h.HandleAction)
	app.Options("/", h.Preflight)
}
