package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/guarani-living/leads-api/internal/application/dto"
	"github.com/guarani-living/leads-api/internal/application/leads"
	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/pkg/logger"
)

// LeadHandler maneja el único URL del endpoint de la planilla, ruteado por
// método. El contrato es el de la hoja original: siempre status 200 y los
// errores dentro del JSON, nunca como fallo de transporte.
type LeadHandler struct {
	uc  *leads.UseCase
	log *logger.Logger
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *leads.UseCase, log *logger.Logger) *LeadHandler {
	return &LeadHandler{uc: uc, log: log.Component("http")}
}

// ReadAll maneja GET /: la planilla completa como array de filas-objeto.
func (h *LeadHandler) ReadAll(c *fiber.Ctx) error {
	rows, err := h.uc.ReadAll(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("read-all falló")
		return c.JSON(dto.ReadErrorResponse{Error: err.Error()})
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return c.JSON(rows)
}

// HandleAction maneja POST /: despacha por el discriminador `action` del cuerpo.
// El cuerpo llega como texto JSON (content type text/plain para esquivar el
// preflight), así que se parsea a mano en lugar de usar BodyParser.
func (h *LeadHandler) HandleAction(c *fiber.Ctx) error {
	body := c.Body()

	var probe dto.ActionProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return c.JSON(dto.ActionResponse{Success: false, Error: err.Error()})
	}

	switch probe.Action {
	case "create":
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			return c.JSON(dto.ActionResponse{Success: false, Error: err.Error()})
		}
		delete(payload, "action")
		if err := h.uc.Create(c.Context(), payload); err != nil {
			h.log.Error().Err(err).Msg("create falló")
			return c.JSON(dto.ActionResponse{Success: false, Error: err.Error()})
		}
		return c.JSON(dto.ActionResponse{Success: true, Action: "create"})

	case "update":
		var in dto.UpdateRequest
		if err := json.Unmarshal(body, &in); err != nil {
			return c.JSON(dto.ActionResponse{Success: false, Error: err.Error()})
		}
		if err := h.uc.UpdateField(c.Context(), in.ID, in.Field, in.Value); err != nil {
			h.log.Warn().Err(err).Str("lead_id", in.ID).Str("field", in.Field).Msg("update falló")
			return c.JSON(dto.ActionResponse{Success: false, Error: err.Error()})
		}
		return c.JSON(dto.ActionResponse{Success: true, Action: "update"})
	}

	return c.JSON(dto.ActionResponse{Success: false, Error: domain.ErrActionNotRecognized.Error()})
}

// Preflight maneja OPTIONS /: cuerpo de texto vacío, para el preflight CORS.
func (h *LeadHandler) Preflight(c *fiber.Ctx) error {
	return c.SendString("")
}
