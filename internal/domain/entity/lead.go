package entity

// Tipos de lead que produce el formulario de la landing.
const (
	TypeInversion      = "INVERSION"
	TypeAdministracion = "ADMINISTRACION"
)

// SourceLanding valor fijo de la columna Fuente para leads del formulario.
const SourceLanding = "Landing Page Form"

// Lead representa un prospecto capturado por el formulario de la landing
// o cargado a mano en la planilla.
type Lead struct {
	ID          string
	Fecha       string // fecha de alta formateada estilo es-PY ("2/1/2026, 15:04:05"); no es un tipo ordenable
	Nombre      string
	Whatsapp    string
	Email       string
	Ubicacion   string // país (inversión) o zona/edificio (administración)
	Presupuesto string
	Tipo        string // INVERSION | ADMINISTRACION
	Interes     string // tipo de renta (inversión) o tipo de propiedad (administración)
	Fuente      string
	Detalles    string // respuestas secundarias etiquetadas, unidas con " | "
	Contacted   bool
	Converted   bool
	Lost        bool
}

// Columnas de la fila de encabezados de la planilla, en el orden en que se
// crean. El orden es significativo: es el contrato histórico con la hoja.
const (
	ColID          = "id"
	ColFecha       = "Fecha"
	ColNombre      = "Nombre"
	ColWhatsapp    = "Whatsapp"
	ColEmail       = "Email"
	ColUbicacion   = "Ubicacion"
	ColPresupuesto = "Presupuesto"
	ColTipo        = "Tipo"
	ColInteres     = "Interes"
	ColFuente      = "Fuente"
	ColDetalles    = "Detalles"
	ColContacted   = "contacted"
	ColConverted   = "converted"
	ColLost        = "lost"
)

// SheetHeader fila de encabezados, en orden de creación.
var SheetHeader = []string{
	ColID, ColFecha, ColNombre, ColWhatsapp, ColEmail, ColUbicacion,
	ColPresupuesto, ColTipo, ColInteres, ColFuente, ColDetalles,
	ColContacted, ColConverted, ColLost,
}

// Aliases nombres alternativos (en inglés) que acepta la acción create,
// mapeados a su columna canónica. El frontend histórico enviaba ambos.
var Aliases = map[string]string{
	"date":     ColFecha,
	"name":     ColNombre,
	"phone":    ColWhatsapp,
	"email":    ColEmail,
	"location": ColUbicacion,
	"budget":   ColPresupuesto,
	"type":     ColTipo,
	"interest": ColInteres,
	"source":   ColFuente,
	"details":  ColDetalles,
}

// IsColumn indica si name es una columna existente del encabezado.
func IsColumn(name string) bool {
	for _, h := range SheetHeader {
		if h == name {
			return true
		}
	}
	return false
}

// Row devuelve el lead como objeto fila, con las claves del encabezado.
// Es la forma en que la acción read-all lo serializa hacia el dashboard.
func (l Lead) Row() map[string]any {
	return map[string]any{
		ColID:          l.ID,
		ColFecha:       l.Fecha,
		ColNombre:      l.Nombre,
		ColWhatsapp:    l.Whatsapp,
		ColEmail:       l.Email,
		ColUbicacion:   l.Ubicacion,
		ColPresupuesto: l.Presupuesto,
		ColTipo:        l.Tipo,
		ColInteres:     l.Interes,
		ColFuente:      l.Fuente,
		ColDetalles:    l.Detalles,
		ColContacted:   l.Contacted,
		ColConverted:   l.Converted,
		ColLost:        l.Lost,
	}
}

// StatusFlag devuelve el valor del flag de estado pedido.
// ok=false si field no es un flag de estado.
func (l Lead) StatusFlag(field string) (value, ok bool) {
	switch field {
	case ColContacted:
		return l.Contacted, true
	case ColConverted:
		return l.Converted, true
	case ColLost:
		return l.Lost, true
	}
	return false, false
}

// SetStatusFlag asigna el flag de estado pedido. ok=false si field no es
// un flag de estado.
func (l *Lead) SetStatusFlag(field string, value bool) bool {
	switch field {
	case ColContacted:
		l.Contacted = value
	case ColConverted:
		l.Converted = value
	case ColLost:
		l.Lost = value
	default:
		return false
	}
	return true
}
