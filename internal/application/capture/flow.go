package capture

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/internal/domain/lead"
	"github.com/guarani-living/leads-api/pkg/logger"
)

// State estado de la máquina del formulario de captura.
type State string

const (
	StateSelection State = "selection"
	StateForm      State = "form"
	StateSuccess   State = "success"
)

// Demora del auto-avance tras elegir una opción en un paso choice.
const defaultAutoAdvance = 400 * time.Millisecond

// Creator es lo único que el flujo necesita del cliente de leads.
type Creator interface {
	CreateLead(ctx context.Context, l entity.Lead) error
}

// Flow máquina de estados del formulario de captura:
// selection -> form (cursor de pasos) -> success.
//
// El envío es optimista: al pasar el último paso el flujo transiciona a
// success de inmediato y persiste en segundo plano. Un fallo del backend
// solo se loguea; la UI ya se comprometió con el estado de éxito.
type Flow struct {
	mu       sync.Mutex
	state    State
	leadType string
	steps    []Step
	index    int
	answers  map[string]string

	inFlight bool
	gen      int // invalida auto-avances programados tras reset/back

	creator     Creator
	log         *logger.Logger
	autoAdvance time.Duration
	now         func() time.Time
	newID       func() string
}

// NewFlow crea el flujo en el estado de selección.
func NewFlow(creator Creator, log *logger.Logger) *Flow {
	return &Flow{
		state:       StateSelection,
		answers:     map[string]string{},
		creator:     creator,
		log:         log.Component("capture"),
		autoAdvance: defaultAutoAdvance,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
}

// State devuelve el estado actual.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// StepIndex devuelve el cursor dentro del formulario.
func (f *Flow) StepIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index
}

// Current devuelve el paso actual. ok=false fuera del estado form.
func (f *Flow) Current() (Step, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateForm || f.index >= len(f.steps) {
		return Step{}, false
	}
	return f.steps[f.index], true
}

// Answer devuelve la respuesta guardada para un paso.
func (f *Flow) Answer(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers[id]
}

// SelectType elige el tipo de lead y arranca el formulario: cursor en cero,
// respuestas limpias y la secuencia de pasos del tipo elegido.
func (f *Flow) SelectType(leadType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch leadType {
	case entity.TypeInversion:
		f.steps = InvestmentSteps()
	case entity.TypeAdministracion:
		f.steps = ManagementSteps()
	default:
		return errors.New("tipo de lead desconocido: " + leadType)
	}
	f.leadType = leadType
	f.state = StateForm
	f.index = 0
	f.answers = map[string]string{}
	f.gen++
	return nil
}

// SetAnswer guarda el valor del paso actual sin avanzar.
func (f *Flow) SetAnswer(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateForm || f.index >= len(f.steps) {
		return
	}
	f.answers[f.steps[f.index].ID] = value
}

// Choose guarda la opción elegida en un paso choice y programa el
// auto-avance tras una pequeña demora (además del avance manual).
func (f *Flow) Choose(option string) {
	f.mu.Lock()
	if f.state != StateForm || f.index >= len(f.steps) || f.steps[f.index].Kind != KindChoice {
		f.mu.Unlock()
		return
	}
	f.answers[f.steps[f.index].ID] = option
	gen, idx := f.gen, f.index
	delay := f.autoAdvance
	f.mu.Unlock()

	time.AfterFunc(delay, func() {
		f.mu.Lock()
		stale := f.gen != gen || f.state != StateForm || f.index != idx
		f.mu.Unlock()
		if stale {
			return
		}
		_ = f.Next()
	})
}

// Next valida el paso actual y avanza el cursor. Pasado el último paso
// dispara el envío en lugar de avanzar. Devuelve el mensaje de validación
// como error cuando el paso bloquea; el cursor no cambia en ese caso.
func (f *Flow) Next() error {
	f.mu.Lock()
	if f.state != StateForm || f.index >= len(f.steps) {
		f.mu.Unlock()
		return nil
	}
	step := f.steps[f.index]
	value := f.answers[step.ID]
	if step.Required && strings.TrimSpace(value) == "" {
		f.mu.Unlock()
		return errors.New(MsgRequired)
	}
	if step.Validate != nil {
		if ok, msg := step.Validate(value); !ok {
			f.mu.Unlock()
			if msg == "" {
				msg = MsgInvalid
			}
			return errors.New(msg)
		}
	}
	if f.index < len(f.steps)-1 {
		f.index++
		f.gen++
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()
	f.submit()
	return nil
}

// Back retrocede un paso. En el primer paso no hace nada.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateForm && f.index > 0 {
		f.index--
		f.gen++
	}
}

// Reset vuelve a la selección descartando tipo, cursor y respuestas.
// Sirve tanto para "cambiar selección" durante el formulario como para
// reiniciar desde la pantalla de éxito.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateSelection
	f.leadType = ""
	f.steps = nil
	f.index = 0
	f.answers = map[string]string{}
	f.gen++
}

// submit transiciona a success de inmediato y persiste en segundo plano.
// El flag inFlight evita disparar un segundo envío mientras hay uno en curso.
func (f *Flow) submit() {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return
	}
	f.inFlight = true
	f.state = StateSuccess
	l := BuildLead(f.leadType, f.answers, f.newID(), lead.FormatFecha(f.now()))
	f.mu.Unlock()

	go func() {
		defer func() {
			f.mu.Lock()
			f.inFlight = false
			f.mu.Unlock()
		}()
		if err := f.creator.CreateLead(context.Background(), l); err != nil {
			f.log.Error().Err(err).Str("lead_id", l.ID).Msg("no se pudo enviar el lead")
			return
		}
		f.log.Info().Str("lead_id", l.ID).Str("tipo", l.Tipo).Msg("lead enviado")
	}()
}

// InFlight indica si hay un envío en curso.
func (f *Flow) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// BuildLead arma el Lead a partir de las respuestas del formulario.
// Las respuestas secundarias van etiquetadas a Detalles, unidas con " | ";
// las vacías se omiten para no dejar separadores colgando.
func BuildLead(leadType string, answers map[string]string, id, fecha string) entity.Lead {
	l := entity.Lead{
		ID:       id,
		Fecha:    fecha,
		Nombre:   answers["fullName"],
		Whatsapp: answers["phone"],
		Email:    answers["email"],
		Tipo:     leadType,
		Fuente:   entity.SourceLanding,
	}
	var detalles []string
	segment := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			detalles = append(detalles, label+": "+value)
		}
	}
	switch leadType {
	case entity.TypeInversion:
		l.Ubicacion = answers["country"]
		l.Presupuesto = answers["budget"]
		l.Interes = answers["rentalType"]
		segment("Plazo", answers["timeframe"])
	case entity.TypeAdministracion:
		l.Ubicacion = answers["zone"]
		l.Interes = answers["propertyType"]
		segment("Amoblado", answers["furnished"])
		segment("Publicado", answers["published"])
		segment("Inicio", answers["startDate"])
		segment("Fotos", answers["photosLink"])
	}
	l.Detalles = strings.Join(detalles, " | ")
	return l
}
