package dto

// El endpoint habla el protocolo de acciones de la hoja original: un solo
// URL, POST con un discriminador `action` en el cuerpo y respuestas JSON
// siempre con status 200 (los errores viajan en el payload, nunca como
// fallo de transporte).

// ActionProbe primer paso del parseo del POST: solo el discriminador.
type ActionProbe struct {
	Action string `json:"action"`
}

// UpdateRequest cuerpo de la acción update: un campo de una fila.
// Value llega como bool o string según el cliente; se normaliza después.
type UpdateRequest struct {
	Action string `json:"action"`
	ID     string `json:"id"`
	Field  string `json:"field"`
	Value  any    `json:"value"`
}

// ActionResponse respuesta de create/update.
type ActionResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReadErrorResponse respuesta de error de read-all (objeto en lugar del
// array de filas).
type ReadErrorResponse struct {
	Error string `json:"error"`
}
