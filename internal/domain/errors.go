package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes de la planilla
// se conservan en español porque forman parte del contrato con el dashboard.
var (
	ErrSheetNotFound       = errors.New("Hoja no encontrada")
	ErrColumnNotFound      = errors.New("Columna no encontrada")
	ErrIDNotFound          = errors.New("ID no encontrado")
	ErrActionNotRecognized = errors.New("Acción no reconocida")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrNoBackend           = errors.New("sin backend configurado")
)
