package repository

import (
	"context"

	"github.com/guarani-living/leads-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia de la planilla de leads.
//
// El contrato replica la hoja original: List devuelve las filas en orden de
// inserción (la más vieja primero) y falla con domain.ErrSheetNotFound si la
// planilla nunca se inicializó; Append inicializa la planilla en forma
// perezosa en la primera fila; UpdateFields aplica todas las escrituras de
// columna sobre la fila con ese id en una sola operación y devuelve
// domain.ErrIDNotFound, sin mutar nada, si ninguna fila coincide.
type LeadRepository interface {
	Append(ctx context.Context, l *entity.Lead) error
	List(ctx context.Context) ([]entity.Lead, error)
	UpdateFields(ctx context.Context, id string, writes map[string]any) error
}
