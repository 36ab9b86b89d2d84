package lead

import "github.com/guarani-living/leads-api/internal/domain/entity"

// CoupledWrites devuelve las escrituras de columna que implica actualizar
// `field` a `value`. Siempre incluye la escritura pedida; si el campo es un
// flag de estado aplica la regla acoplada del pipeline:
//
//	converted=true  => lost=false, contacted=true
//	lost=true       => converted=false
//
// La regla vive únicamente en este camino de actualización de un solo campo.
// Dos escrituras independientes por columnas sueltas pueden dejar converted
// y lost en true a la vez; ese es el comportamiento histórico de la planilla
// y no se refuerza como invariante global.
func CoupledWrites(field string, value any) map[string]any {
	writes := map[string]any{field: value}
	switch field {
	case entity.ColConverted:
		if TruthyValue(value) {
			writes[entity.ColLost] = false
			writes[entity.ColContacted] = true
		}
	case entity.ColLost:
		if TruthyValue(value) {
			writes[entity.ColConverted] = false
		}
	}
	return writes
}

// ApplyCoupled aplica sobre el lead en memoria las mismas escrituras que
// CoupledWrites produce para la planilla. Lo usa el tablero CRM para el
// update optimista, de modo que local y remoto queden con idéntico estado.
func ApplyCoupled(l *entity.Lead, field string, value bool) bool {
	if !l.SetStatusFlag(field, value) {
		return false
	}
	if field == entity.ColConverted && value {
		l.Lost = false
		l.Contacted = true
	}
	if field == entity.ColLost && value {
		l.Converted = false
	}
	return true
}

// TruthyValue interpreta un valor heterogéneo de celda como booleano.
// La hoja histórica mezcla true/false reales con los strings "true"/"false"
// (y celdas vacías); la comparación tolera ambos.
func TruthyValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "TRUE" || t == "True"
	}
	return false
}
