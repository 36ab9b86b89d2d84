package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/internal/domain/lead"
	"github.com/guarani-living/leads-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// Querier abstrae pool o tx de pgx (lo mínimo que usa este repo).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LeadRepo implementación PostgreSQL de la planilla de leads. La tabla hace
// de hoja: las columnas son la fila de encabezados y `seq` conserva el orden
// de inserción para que read-all devuelva las filas como están guardadas.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// columnas de la tabla, indexadas por el nombre de encabezado de la hoja.
var dbColumn = map[string]string{
	entity.ColID:          "id",
	entity.ColFecha:       "fecha",
	entity.ColNombre:      "nombre",
	entity.ColWhatsapp:    "whatsapp",
	entity.ColEmail:       "email",
	entity.ColUbicacion:   "ubicacion",
	entity.ColPresupuesto: "presupuesto",
	entity.ColTipo:        "tipo",
	entity.ColInteres:     "interes",
	entity.ColFuente:      "fuente",
	entity.ColDetalles:    "detalles",
	entity.ColContacted:   "contacted",
	entity.ColConverted:   "converted",
	entity.ColLost:        "lost",
}

var statusColumns = map[string]bool{
	entity.ColContacted: true,
	entity.ColConverted: true,
	entity.ColLost:      true,
}

const createTable = `
	CREATE TABLE IF NOT EXISTS leads (
		seq         BIGSERIAL PRIMARY KEY,
		id          TEXT NOT NULL,
		fecha       TEXT NOT NULL DEFAULT '',
		nombre      TEXT NOT NULL DEFAULT '',
		whatsapp    TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		ubicacion   TEXT NOT NULL DEFAULT '',
		presupuesto TEXT NOT NULL DEFAULT '',
		tipo        TEXT NOT NULL DEFAULT '',
		interes     TEXT NOT NULL DEFAULT '',
		fuente      TEXT NOT NULL DEFAULT '',
		detalles    TEXT NOT NULL DEFAULT '',
		contacted   BOOLEAN NOT NULL DEFAULT FALSE,
		converted   BOOLEAN NOT NULL DEFAULT FALSE,
		lost        BOOLEAN NOT NULL DEFAULT FALSE
	)`

// Append agrega una fila. La tabla se crea en forma perezosa en la primera
// inserción, igual que la fila de encabezados de la hoja original.
func (r *LeadRepo) Append(ctx context.Context, l *entity.Lead) error {
	if _, err := r.q.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("inicializar planilla: %w", err)
	}
	query := `
		INSERT INTO leads (id, fecha, nombre, whatsapp, email, ubicacion,
			presupuesto, tipo, interes, fuente, detalles, contacted, converted, lost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Fecha, l.Nombre, l.Whatsapp, l.Email, l.Ubicacion,
		l.Presupuesto, l.Tipo, l.Interes, l.Fuente, l.Detalles,
		l.Contacted, l.Converted, l.Lost,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// List devuelve todas las filas en orden de inserción (la más vieja primero).
// Si la tabla no existe todavía, la planilla "no está": ErrSheetNotFound.
func (r *LeadRepo) List(ctx context.Context) ([]entity.Lead, error) {
	query := `
		SELECT id, fecha, nombre, whatsapp, email, ubicacion, presupuesto,
			tipo, interes, fuente, detalles, contacted, converted, lost
		FROM leads ORDER BY seq`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, domain.ErrSheetNotFound
		}
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var list []entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(
			&l.ID, &l.Fecha, &l.Nombre, &l.Whatsapp, &l.Email, &l.Ubicacion,
			&l.Presupuesto, &l.Tipo, &l.Interes, &l.Fuente, &l.Detalles,
			&l.Contacted, &l.Converted, &l.Lost,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateFields aplica todas las escrituras sobre la fila con ese id en un
// solo UPDATE. Con ids duplicados solo se toca la primera fila en orden de
// inserción, como un escaneo lineal que corta en el primer match. Devuelve
// ErrColumnNotFound si alguna clave no es una columna del encabezado y
// ErrIDNotFound, sin mutar nada, si la fila no existe.
func (r *LeadRepo) UpdateFields(ctx context.Context, id string, writes map[string]any) error {
	if len(writes) == 0 {
		return nil
	}
	sets := make([]string, 0, len(writes))
	args := []any{id}
	for col, val := range writes {
		dbc, ok := dbColumn[col]
		if !ok || col == entity.ColID {
			return domain.ErrColumnNotFound
		}
		if statusColumns[col] {
			args = append(args, lead.TruthyValue(val))
		} else {
			args = append(args, fmt.Sprint(val))
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", dbc, len(args)))
	}
	query := fmt.Sprintf(
		"UPDATE leads SET %s WHERE seq = (SELECT min(seq) FROM leads WHERE id = $1)",
		strings.Join(sets, ", "))
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrSheetNotFound
		}
		return fmt.Errorf("update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIDNotFound
	}
	return nil
}

// isUndefinedTable detecta el código 42P01 (la tabla nunca se creó).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
