package main

import (
	"context"

	"github.com/guarani-living/leads-api/internal/application/leads"
	"github.com/guarani-living/leads-api/internal/infrastructure/postgres"
	"github.com/guarani-living/leads-api/pkg/config"
	"github.com/guarani-living/leads-api/pkg/logger"
)

// Carga unos leads de muestra en la planilla, vía el caso de uso (mismos
// defaults y alias que la acción create). Para probar el CRM con datos.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := leads.NewUseCase(postgres.NewLeadRepository(pool))

	samples := []map[string]any{
		{
			"name":     "Juan Pérez",
			"email":    "juan.perez@example.com",
			"phone":    "+595 991 899050",
			"location": "Paraguay",
			"budget":   "USD 30.000–50.000",
			"type":     "INVERSION",
			"interest": "Renta corta (Airbnb/Booking)",
			"source":   "Seed",
			"details":  "Plazo: De inmediato",
		},
		{
			"name":     "María González",
			"email":    "maria.gonzalez@example.com",
			"phone":    "+54 911 5555 1234",
			"location": "Argentina",
			"budget":   "USD 50.000–100.000",
			"type":     "INVERSION",
			"source":   "Seed",
			"details":  "Plazo: Próximos 3 meses",
		},
		{
			"name":     "Carlos Benítez",
			"email":    "carlos.benitez@example.com",
			"phone":    "+595 981 223344",
			"location": "Villa Morra, Torre Champagne",
			"type":     "ADMINISTRACION",
			"interest": "1 dormitorio",
			"source":   "Seed",
			"details":  "Amoblado: Sí | Publicado: No | Inicio: Inmediato",
		},
	}

	for _, s := range samples {
		if err := uc.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Msg("crear lead de muestra")
		}
		log.Info().Str("nombre", s["name"].(string)).Msg("lead de muestra creado")
	}
	log.Info().Int("total", len(samples)).Msg("seed completo")
}
