package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/internal/domain/lead"
	"github.com/guarani-living/leads-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo planilla de leads en memoria. Se usa en development (API sin
// DATABASE_URL) y en tests. Mismo contrato que la implementación PostgreSQL:
// orden de inserción, inicialización perezosa y ErrIDNotFound sin mutación.
type LeadRepo struct {
	mu          sync.Mutex
	initialized bool
	rows        []entity.Lead
}

// NewLeadRepository crea una planilla en memoria ya inicializada (hoja
// existente y vacía).
func NewLeadRepository() *LeadRepo {
	return &LeadRepo{initialized: true}
}

// NewUninitialized crea una planilla que todavía no existe: List falla con
// ErrSheetNotFound hasta el primer Append.
func NewUninitialized() *LeadRepo {
	return &LeadRepo{}
}

// Append agrega una fila al final, inicializando la hoja si hace falta.
func (r *LeadRepo) Append(_ context.Context, l *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = true
	r.rows = append(r.rows, *l)
	return nil
}

// List devuelve una copia de las filas en orden de inserción.
func (r *LeadRepo) List(_ context.Context) ([]entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return nil, domain.ErrSheetNotFound
	}
	out := make([]entity.Lead, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

// UpdateFields busca la fila por id (primer match, escaneo lineal) y aplica
// todas las escrituras. Valida las columnas antes de tocar nada.
func (r *LeadRepo) UpdateFields(_ context.Context, id string, writes map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for col := range writes {
		if !entity.IsColumn(col) || col == entity.ColID {
			return domain.ErrColumnNotFound
		}
	}
	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		for col, val := range writes {
			applyCell(&r.rows[i], col, val)
		}
		return nil
	}
	return domain.ErrIDNotFound
}

func applyCell(l *entity.Lead, col string, val any) {
	switch col {
	case entity.ColContacted, entity.ColConverted, entity.ColLost:
		l.SetStatusFlag(col, lead.TruthyValue(val))
	case entity.ColFecha:
		l.Fecha = asString(val)
	case entity.ColNombre:
		l.Nombre = asString(val)
	case entity.ColWhatsapp:
		l.Whatsapp = asString(val)
	case entity.ColEmail:
		l.Email = asString(val)
	case entity.ColUbicacion:
		l.Ubicacion = asString(val)
	case entity.ColPresupuesto:
		l.Presupuesto = asString(val)
	case entity.ColTipo:
		l.Tipo = asString(val)
	case entity.ColInteres:
		l.Interes = asString(val)
	case entity.ColFuente:
		l.Fuente = asString(val)
	case entity.ColDetalles:
		l.Detalles = asString(val)
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	// Otros tipos JSON (números) se guardan como texto plano, como una celda.
	return fmt.Sprint(v)
}
