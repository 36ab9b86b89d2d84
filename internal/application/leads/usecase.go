package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/internal/domain/lead"
	"github.com/guarani-living/leads-api/internal/domain/repository"
)

// UseCase operaciones de la planilla de leads: read-all, create y
// update-field. Es la única vía de mutación que usa el dashboard.
type UseCase struct {
	repo  repository.LeadRepository
	now   func() time.Time
	newID func() string
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.LeadRepository) *UseCase {
	return &UseCase{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// ReadAll devuelve la planilla completa como filas-objeto, con las claves
// del encabezado, en el orden en que están guardadas (la más vieja primero).
func (uc *UseCase) ReadAll(ctx context.Context) ([]map[string]any, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(list))
	for _, l := range list {
		rows = append(rows, l.Row())
	}
	return rows, nil
}

// Create agrega una fila a partir de un payload de columnas o alias.
// Campos ausentes reciben sus defaults: id generado, Fecha "ahora" en
// formato regional, flags en false y textos vacíos.
func (uc *UseCase) Create(ctx context.Context, payload map[string]any) error {
	l := &entity.Lead{
		ID:          textCell(payload, entity.ColID, ""),
		Fecha:       textCell(payload, entity.ColFecha, "date"),
		Nombre:      textCell(payload, entity.ColNombre, "name"),
		Whatsapp:    textCell(payload, entity.ColWhatsapp, "phone"),
		Email:       textCell(payload, entity.ColEmail, "email"),
		Ubicacion:   textCell(payload, entity.ColUbicacion, "location"),
		Presupuesto: textCell(payload, entity.ColPresupuesto, "budget"),
		Tipo:        textCell(payload, entity.ColTipo, "type"),
		Interes:     textCell(payload, entity.ColInteres, "interest"),
		Fuente:      textCell(payload, entity.ColFuente, "source"),
		Detalles:    textCell(payload, entity.ColDetalles, "details"),
		Contacted:   lead.TruthyValue(payload[entity.ColContacted]),
		Converted:   lead.TruthyValue(payload[entity.ColConverted]),
		Lost:        lead.TruthyValue(payload[entity.ColLost]),
	}
	if l.ID == "" {
		l.ID = uc.newID()
	}
	if l.Fecha == "" {
		l.Fecha = lead.FormatFecha(uc.now())
	}
	return uc.repo.Append(ctx, l)
}

// UpdateField actualiza una columna de la fila con ese id, aplicando la
// regla acoplada de los flags de estado en la misma operación.
func (uc *UseCase) UpdateField(ctx context.Context, id, field string, value any) error {
	if !entity.IsColumn(field) || field == entity.ColID {
		return domain.ErrColumnNotFound
	}
	return uc.repo.UpdateFields(ctx, id, lead.CoupledWrites(field, value))
}

// textCell resuelve un valor de texto del payload por nombre de columna o
// alias. Valores no-string se aplanan a texto, como haría una celda.
func textCell(payload map[string]any, col string, alias string) string {
	if v, ok := payload[col]; ok && v != nil {
		if s := fmt.Sprint(v); s != "" {
			return s
		}
	}
	if alias != "" {
		if v, ok := payload[alias]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
