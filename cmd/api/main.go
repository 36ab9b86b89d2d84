package main

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/guarani-living/leads-api/internal/application/leads"
	"github.com/guarani-living/leads-api/internal/domain/repository"
	"github.com/guarani-living/leads-api/internal/infrastructure/memory"
	"github.com/guarani-living/leads-api/internal/infrastructure/postgres"
	apphttp "github.com/guarani-living/leads-api/internal/interfaces/http"
	"github.com/guarani-living/leads-api/pkg/config"
	"github.com/guarani-living/leads-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando endpoint de leads")

	var repo repository.LeadRepository
	if cfg.DB.DatabaseURL == "" && cfg.App.Env == "development" {
		// Sin DATABASE_URL en development: planilla en memoria, se pierde al
		// reiniciar. Útil para probar la landing y el CRM sin base.
		log.Warn().Msg("sin DATABASE_URL, usando planilla en memoria")
		repo = memory.NewLeadRepository()
	} else {
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo = postgres.NewLeadRepository(pool)
	}

	uc := leads.NewUseCase(repo)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	apphttp.Router(app, uc, log)

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}
