package lead

import (
	"strings"
	"time"
)

// FechaLayout formato de la columna Fecha, estilo toLocaleString('es-PY'):
// día/mes/año sin ceros a la izquierda, hora de 24h.
const FechaLayout = "2/1/2006, 15:04:05"

// FormatFecha formatea un instante como celda Fecha.
func FormatFecha(t time.Time) string {
	return t.Format(FechaLayout)
}

// ParseFecha interpreta una celda Fecha para ordenar el tablero.
// Primero intenta formatos estándar (RFC3339, fecha ISO), después el formato
// regional D/M/YYYY con o sin hora. Una celda inilegible ordena como época
// cero: el tablero nunca debe caerse por una fecha rara cargada a mano.
func ParseFecha(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		FechaLayout,
		"2/1/2006, 15:04",
		"2/1/2006",
		"02/01/2006, 15:04:05",
		"02/01/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
