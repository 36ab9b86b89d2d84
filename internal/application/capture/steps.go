package capture

import "github.com/guarani-living/leads-api/internal/domain/lead"

// Kind tipo de input de un paso del formulario.
type Kind string

const (
	KindText   Kind = "text"
	KindEmail  Kind = "email"
	KindTel    Kind = "tel"
	KindSelect Kind = "select"
	KindChoice Kind = "choice"
)

// Mensajes de validación del formulario.
const (
	MsgRequired     = "Este campo es requerido"
	MsgInvalid      = "Valor inválido"
	MsgInvalidEmail = "Por favor ingresá un email válido"
	MsgInvalidPhone = "Por favor ingresá un número válido"
)

// Step un paso de la secuencia de captura: una pregunta, un campo.
type Step struct {
	ID          string
	Question    string
	Subtitle    string
	Kind        Kind
	Options     []string
	Required    bool
	Placeholder string
	// Validate devuelve ok, o el mensaje a mostrar. Mensaje vacío con
	// ok=false usa el genérico MsgInvalid.
	Validate func(value string) (ok bool, msg string)
}

func validateEmail(v string) (bool, string) {
	if lead.ValidEmail(v) {
		return true, ""
	}
	return false, MsgInvalidEmail
}

func validatePhone(v string) (bool, string) {
	if lead.ValidPhone(v) {
		return true, ""
	}
	return false, MsgInvalidPhone
}

// InvestmentSteps la secuencia para quien quiere comprar para rentar.
func InvestmentSteps() []Step {
	return []Step{
		{
			ID:          "fullName",
			Question:    "¿Cuál es tu nombre completo?",
			Kind:        KindText,
			Required:    true,
			Placeholder: "Juan Pérez",
		},
		{
			ID:          "email",
			Question:    "¿Cuál es tu email?",
			Kind:        KindEmail,
			Required:    true,
			Placeholder: "juan@ejemplo.com",
			Validate:    validateEmail,
		},
		{
			ID:          "phone",
			Question:    "¿Cuál es tu número de WhatsApp?",
			Subtitle:    "Incluí el código de país",
			Kind:        KindTel,
			Required:    true,
			Placeholder: "+595 991 899050",
			Validate:    validatePhone,
		},
		{
			ID:          "country",
			Question:    "¿Desde qué país nos contactás?",
			Kind:        KindText,
			Required:    true,
			Placeholder: "Paraguay",
		},
		{
			ID:       "budget",
			Question: "¿Cuál es tu presupuesto aproximado?",
			Kind:     KindChoice,
			Required: true,
			Options: []string{
				"USD 30.000–50.000",
				"USD 50.000–100.000",
				"Más de USD 100.000",
			},
		},
		{
			ID:       "timeframe",
			Question: "¿Cuándo estás pensando invertir?",
			Kind:     KindChoice,
			Required: true,
			Options:  []string{"De inmediato", "Próximos 3 meses", "Solo estoy evaluando"},
		},
		{
			ID:       "rentalType",
			Question: "¿Qué tipo de renta te interesa?",
			Subtitle: "Este campo es opcional",
			Kind:     KindChoice,
			Required: false,
			Options:  []string{"Renta corta (Airbnb/Booking)", "No estoy seguro/a"},
		},
	}
}

// ManagementSteps la secuencia para quien ya tiene un departamento y quiere
// que lo administremos.
func ManagementSteps() []Step {
	return []Step{
		{
			ID:          "fullName",
			Question:    "¿Cuál es tu nombre completo?",
			Kind:        KindText,
			Required:    true,
			Placeholder: "Juan Pérez",
		},
		{
			ID:          "email",
			Question:    "¿Cuál es tu email?",
			Kind:        KindEmail,
			Required:    true,
			Placeholder: "juan@ejemplo.com",
			Validate:    validateEmail,
		},
		{
			ID:          "phone",
			Question:    "¿Cuál es tu número de WhatsApp?",
			Subtitle:    "Incluí el código de país",
			Kind:        KindTel,
			Required:    true,
			Placeholder: "+595 991 899050",
			Validate:    validatePhone,
		},
		{
			ID:          "zone",
			Question:    "¿En qué zona o edificio está tu propiedad?",
			Kind:        KindText,
			Required:    true,
			Placeholder: "Ej: Villa Morra, Torre Champagne",
		},
		{
			ID:       "propertyType",
			Question: "¿Qué tipo de propiedad es?",
			Kind:     KindChoice,
			Required: true,
			Options:  []string{"Monoambiente", "1 dormitorio", "2 dormitorios", "Otro"},
		},
		{
			ID:       "furnished",
			Question: "¿Está amoblado?",
			Kind:     KindChoice,
			Required: true,
			Options:  []string{"Sí", "No", "Parcialmente"},
		},
		{
			ID:       "published",
			Question: "¿Ya está publicado en Airbnb o Booking?",
			Kind:     KindChoice,
			Required: true,
			Options:  []string{"Sí", "No"},
		},
		{
			ID:       "startDate",
			Question: "¿Desde cuándo te gustaría empezar?",
			Kind:     KindChoice,
			Required: true,
			Options:  []string{"Inmediato", "Estoy evaluando"},
		},
		{
			ID:          "photosLink",
			Question:    "¿Tenés fotos de la propiedad?",
			Subtitle:    "Podés compartir un link a Google Drive o similar (opcional)",
			Kind:        KindText,
			Required:    false,
			Placeholder: "https://drive.google.com/...",
		},
	}
}
