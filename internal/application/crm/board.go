package crm

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/guarani-living/leads-api/internal/application/settings"
	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/internal/domain/lead"
	"github.com/guarani-living/leads-api/pkg/logger"
)

// StatusFilter filtro de estado del tablero.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterNew       StatusFilter = "new" // sin contactar: los tres flags en false
	FilterContacted StatusFilter = "contacted"
	FilterConverted StatusFilter = "converted"
	FilterLost      StatusFilter = "lost"
)

// Client es lo que el tablero necesita del cliente de leads.
type Client interface {
	Configured() bool
	SetBaseURL(url string)
	ListLeads(ctx context.Context) ([]entity.Lead, error)
	UpdateLead(ctx context.Context, id, field string, value any) error
}

// Board view-model del tablero CRM: carga la lista completa, aplica filtros
// locales y muta estados con update optimista + resincronización total si el
// backend rechaza.
type Board struct {
	mu       sync.Mutex
	client   Client
	session  *Session
	settings *settings.Store
	log      *logger.Logger

	leads   []entity.Lead
	lastErr string

	search       string
	statusFilter StatusFilter
	typeFilter   string // "all" | INVERSION | ADMINISTRACION
}

// NewBoard construye el tablero. session puede ser nil (sin capa de login).
// Si el cliente no trae URL de la configuración, se aplica el override local
// persistido: la cadena es valor de config -> override guardado -> vacío, y
// el setup guardado con SaveSetup sobrevive al reinicio del proceso.
func NewBoard(client Client, session *Session, st *settings.Store, log *logger.Logger) *Board {
	if !client.Configured() && st != nil {
		if url := st.EndpointURL(); url != "" {
			client.SetBaseURL(url)
		}
	}
	return &Board{
		client:       client,
		session:      session,
		settings:     st,
		log:          log.Component("crm"),
		statusFilter: FilterAll,
		typeFilter:   "all",
	}
}

// Unlocked indica si la capa de sesión permite ver el tablero.
func (b *Board) Unlocked() bool {
	return b.session == nil || b.session.Valid()
}

// NeedsSetup indica si falta configurar la URL del backend: en ese caso el
// tablero muestra el formulario de configuración en lugar de datos.
func (b *Board) NeedsSetup() bool {
	return !b.client.Configured()
}

// SaveSetup persiste la URL del backend y desbloquea el tablero.
func (b *Board) SaveSetup(url string) error {
	if strings.TrimSpace(url) == "" {
		return domain.ErrInvalidInput
	}
	if err := b.settings.SetEndpointURL(url); err != nil {
		return err
	}
	b.client.SetBaseURL(url)
	return nil
}

// Load trae la lista autoritativa del backend. Filas sin id se descartan.
// Si la carga falla, la lista anterior queda en su lugar y el error queda
// disponible en Error() para mostrarlo como banner.
func (b *Board) Load(ctx context.Context) error {
	if !b.Unlocked() {
		return domain.ErrUnauthorized
	}
	if b.NeedsSetup() {
		return nil
	}
	return b.reload(ctx)
}

func (b *Board) reload(ctx context.Context) error {
	list, err := b.client.ListLeads(ctx)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.lastErr = err.Error()
		return err
	}
	filtered := list[:0]
	for _, l := range list {
		if l.ID != "" {
			filtered = append(filtered, l)
		}
	}
	b.leads = filtered
	b.lastErr = ""
	return nil
}

// Error devuelve el último error de carga ("" si la última carga anduvo).
func (b *Board) Error() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// SetSearch fija la búsqueda libre (nombre, email o WhatsApp).
func (b *Board) SetSearch(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.search = term
}

// SetStatusFilter fija el filtro de estado.
func (b *Board) SetStatusFilter(f StatusFilter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statusFilter = f
}

// SetTypeFilter fija el filtro de motivación ("all", INVERSION o ADMINISTRACION).
func (b *Board) SetTypeFilter(t string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.typeFilter = t
}

// Visible devuelve los leads que pasan los filtros, ordenados del más nuevo
// al más viejo por Fecha. Fechas inilegibles ordenan como época cero.
func (b *Board) Visible() []entity.Lead {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.Lead, 0, len(b.leads))
	for _, l := range b.leads {
		if b.matches(l) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lead.ParseFecha(out[i].Fecha).After(lead.ParseFecha(out[j].Fecha))
	})
	return out
}

// Toggle niega el flag de estado del lead y lo persiste: primero aplica el
// cambio (y la regla acoplada) sobre la copia local, después confirma contra
// el backend. Si el backend rechaza, descarta el estado optimista y vuelve a
// leer la lista autoritativa completa; una sola relectura, sin reintentos.
func (b *Board) Toggle(ctx context.Context, id, field string) error {
	b.mu.Lock()
	var newValue bool
	found := false
	for i := range b.leads {
		if b.leads[i].ID != id {
			continue
		}
		cur, ok := b.leads[i].StatusFlag(field)
		if !ok {
			b.mu.Unlock()
			return domain.ErrColumnNotFound
		}
		newValue = !cur
		lead.ApplyCoupled(&b.leads[i], field, newValue)
		found = true
		break
	}
	b.mu.Unlock()
	if !found {
		return domain.ErrIDNotFound
	}

	if err := b.client.UpdateLead(ctx, id, field, newValue); err != nil {
		b.log.Warn().Err(err).Str("lead_id", id).Str("field", field).
			Msg("update rechazado, resincronizando")
		if rerr := b.reload(ctx); rerr != nil {
			b.log.Error().Err(rerr).Msg("resincronización fallida")
		}
		return err
	}
	return nil
}

// Búsqueda insensible a mayúsculas y acentos: "perez" encuentra a "Pérez".
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func (b *Board) matches(l entity.Lead) bool {
	if term := strings.TrimSpace(b.search); term != "" {
		ft := fold(term)
		if !strings.Contains(fold(l.Nombre), ft) &&
			!strings.Contains(fold(l.Email), ft) &&
			!strings.Contains(l.Whatsapp, term) {
			return false
		}
	}

	switch b.statusFilter {
	case FilterContacted:
		if !l.Contacted {
			return false
		}
	case FilterConverted:
		if !l.Converted {
			return false
		}
	case FilterLost:
		if !l.Lost {
			return false
		}
	case FilterNew:
		if l.Contacted || l.Converted || l.Lost {
			return false
		}
	}

	if b.typeFilter != "" && b.typeFilter != "all" && l.Tipo != b.typeFilter {
		return false
	}
	return true
}
