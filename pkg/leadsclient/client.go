package leadsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/internal/domain/lead"
	"github.com/guarani-living/leads-api/pkg/logger"
)

// Client SDK del endpoint de leads: las tres operaciones del protocolo de
// acciones sobre una única URL base.
//
// Sin URL configurada el comportamiento degrada como el sitio original:
// ListLeads devuelve lista vacía sin llamar a nada, CreateLead emula el
// envío con un warning y UpdateLead falla de inmediato. La asimetría entre
// create y update es deliberada y se conserva.
type Client struct {
	mu      sync.RWMutex
	baseURL string
	httpc   *http.Client
	log     *logger.Logger
}

// New construye el cliente. baseURL vacío significa "sin backend".
func New(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSpace(baseURL),
		httpc:   &http.Client{},
		log:     log.Component("leadsclient"),
	}
}

// Configured indica si hay una URL de backend.
func (c *Client) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL != ""
}

// SetBaseURL cambia la URL base (la usa el setup del CRM).
func (c *Client) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimSpace(url)
}

func (c *Client) url() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// ListLeads trae la planilla completa, ya decodificada y normalizada: los
// booleanos stringly ("true"/"false") se resuelven acá, una sola vez, para
// que el resto del código nunca vuelva a parsearlos.
func (c *Client) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	url := c.url()
	if url == "" {
		return []entity.Lead{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo leads: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error obteniendo leads: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo leads: %w", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		// No es un array: puede ser el objeto {error} del endpoint.
		var endpointErr struct {
			Error string `json:"error"`
		}
		if jerr := json.Unmarshal(body, &endpointErr); jerr == nil && endpointErr.Error != "" {
			return nil, fmt.Errorf("%s", endpointErr.Error)
		}
		return nil, fmt.Errorf("respuesta ilegible del endpoint: %w", err)
	}

	leads := make([]entity.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, decodeRow(row))
	}
	return leads, nil
}

// CreateLead envía la acción create. Sin backend configurado emula el envío
// (degradación local explícita, sin red ni reintentos).
func (c *Client) CreateLead(ctx context.Context, l entity.Lead) error {
	url := c.url()
	if url == "" {
		c.log.Warn().Str("lead_id", l.ID).Msg("sin backend configurado, emulando envío del lead")
		return nil
	}

	payload := l.Row()
	payload["action"] = "create"
	resp, err := c.post(ctx, url, payload)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}

// UpdateLead envía la acción update para un campo de una fila. Sin backend
// configurado falla de inmediato, sin intento de red.
func (c *Client) UpdateLead(ctx context.Context, id, field string, value any) error {
	url := c.url()
	if url == "" {
		return domain.ErrNoBackend
	}

	resp, err := c.post(ctx, url, map[string]any{
		"action": "update",
		"id":     id,
		"field":  field,
		"value":  value,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.Error != "" {
			return fmt.Errorf("%s", resp.Error)
		}
		return fmt.Errorf("no se pudo actualizar el lead")
	}
	return nil
}

type actionResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Error   string `json:"error"`
}

func (c *Client) post(ctx context.Context, url string, payload map[string]any) (*actionResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// text/plain evita el preflight CORS; el endpoint parsea el cuerpo como
	// JSON sin mirar el content type, igual que la hoja original.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error de red: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error de red: status %d", resp.StatusCode)
	}

	var out actionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("respuesta ilegible del endpoint: %w", err)
	}
	return &out, nil
}

// decodeRow normaliza una fila-objeto de la planilla a un Lead tipado.
func decodeRow(row map[string]any) entity.Lead {
	return entity.Lead{
		ID:          cell(row, entity.ColID),
		Fecha:       cell(row, entity.ColFecha),
		Nombre:      cell(row, entity.ColNombre),
		Whatsapp:    cell(row, entity.ColWhatsapp),
		Email:       cell(row, entity.ColEmail),
		Ubicacion:   cell(row, entity.ColUbicacion),
		Presupuesto: cell(row, entity.ColPresupuesto),
		Tipo:        cell(row, entity.ColTipo),
		Interes:     cell(row, entity.ColInteres),
		Fuente:      cell(row, entity.ColFuente),
		Detalles:    cell(row, entity.ColDetalles),
		Contacted:   lead.TruthyValue(row[entity.ColContacted]),
		Converted:   lead.TruthyValue(row[entity.ColConverted]),
		Lost:        lead.TruthyValue(row[entity.ColLost]),
	}
}

func cell(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
