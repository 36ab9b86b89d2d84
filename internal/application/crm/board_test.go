package crm_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guarani-living/leads-api/internal/application/crm"
	"github.com/guarani-living/leads-api/internal/application/settings"
	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/pkg/logger"
)

// fakeClient responde ListLeads con una lista fija y registra los updates.
type fakeClient struct {
	baseURL   string
	list      []entity.Lead
	listErr   error
	updateErr error

	listCalls int
	updates   []string // "id/field=value"
}

func (c *fakeClient) Configured() bool    { return c.baseURL != "" }
func (c *fakeClient) SetBaseURL(u string) { c.baseURL = u }

func (c *fakeClient) ListLeads(context.Context) ([]entity.Lead, error) {
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]entity.Lead, len(c.list))
	copy(out, c.list)
	return out, nil
}

func (c *fakeClient) UpdateLead(_ context.Context, id, field string, value any) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.updates = append(c.updates, id+"/"+field)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func testStore(t *testing.T) *settings.Store {
	t.Helper()
	st, err := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	return st
}

func sampleLeads() []entity.Lead {
	return []entity.Lead{
		{ID: "a", Fecha: "1/8/2026, 10:00:00", Nombre: "Juan Pérez", Email: "juan@test.com", Whatsapp: "+595991111111", Tipo: entity.TypeInversion},
		{ID: "b", Fecha: "15/8/2026, 10:00:00", Nombre: "María González", Email: "maria@test.com", Whatsapp: "+595992222222", Tipo: entity.TypeAdministracion, Contacted: true},
		{ID: "c", Fecha: "20/8/2026, 10:00:00", Nombre: "Carlos Benítez", Email: "carlos@test.com", Whatsapp: "+595993333333", Tipo: entity.TypeInversion, Contacted: true, Converted: true},
	}
}

func newBoard(t *testing.T, client *fakeClient) *crm.Board {
	t.Helper()
	return crm.NewBoard(client, nil, testStore(t), testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración y carga
// ──────────────────────────────────────────────────────────────────────────────

func TestNeedsSetup_SinURLMuestraConfiguracion(t *testing.T) {
	client := &fakeClient{}
	b := newBoard(t, client)

	assert.True(t, b.NeedsSetup())
	require.NoError(t, b.Load(context.Background()))
	assert.Zero(t, client.listCalls, "sin backend configurado no se intenta cargar")
}

func TestSaveSetup_PersisteYDesbloquea(t *testing.T) {
	client := &fakeClient{list: sampleLeads()}
	st := testStore(t)
	b := crm.NewBoard(client, nil, st, testLogger())

	require.NoError(t, b.SaveSetup("https://backend.example/exec"))

	assert.False(t, b.NeedsSetup())
	assert.Equal(t, "https://backend.example/exec", st.EndpointURL())
	require.NoError(t, b.Load(context.Background()))
	assert.Len(t, b.Visible(), 3)
}

func TestNewBoard_ElSetupGuardadoSobreviveAlReinicio(t *testing.T) {
	st := testStore(t)
	b := crm.NewBoard(&fakeClient{}, nil, st, testLogger())
	require.NoError(t, b.SaveSetup("https://backend.example/exec"))

	// Proceso nuevo: cliente sin URL de config, mismo archivo de settings.
	client2 := &fakeClient{list: sampleLeads()}
	b2 := crm.NewBoard(client2, nil, st, testLogger())

	assert.False(t, b2.NeedsSetup(), "tras el reinicio el tablero no debería pedir configuración de nuevo")
	assert.Equal(t, "https://backend.example/exec", client2.baseURL)
	require.NoError(t, b2.Load(context.Background()))
	assert.Len(t, b2.Visible(), 3)
}

func TestNewBoard_LaURLDeConfigTienePrioridad(t *testing.T) {
	st := testStore(t)
	require.NoError(t, st.SetEndpointURL("https://override.example/exec"))

	client := &fakeClient{baseURL: "https://config.example/exec"}
	crm.NewBoard(client, nil, st, testLogger())

	assert.Equal(t, "https://config.example/exec", client.baseURL)
}

func TestSaveSetup_URLVacia(t *testing.T) {
	b := newBoard(t, &fakeClient{})
	assert.ErrorIs(t, b.SaveSetup("   "), domain.ErrInvalidInput)
}

func TestLoad_DescartaFilasSinID(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: append(sampleLeads(), entity.Lead{Nombre: "fantasma"})}
	b := newBoard(t, client)

	require.NoError(t, b.Load(context.Background()))
	for _, l := range b.Visible() {
		assert.NotEmpty(t, l.ID)
	}
	assert.Len(t, b.Visible(), 3)
}

func TestLoad_FallaConservaLaListaAnterior(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))
	require.Len(t, b.Visible(), 3)

	client.listErr = errors.New("backend caído")
	err := b.Load(context.Background())

	assert.Error(t, err)
	assert.Len(t, b.Visible(), 3, "la lista anterior sigue visible")
	assert.Equal(t, "backend caído", b.Error())

	// La siguiente carga exitosa limpia el indicador.
	client.listErr = nil
	require.NoError(t, b.Load(context.Background()))
	assert.Empty(t, b.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros y orden
// ──────────────────────────────────────────────────────────────────────────────

func TestVisible_OrdenaDelMasNuevoAlMasViejo(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	got := b.Visible()
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
}

func TestVisible_FechaIlegibleOrdenaAlFinal(t *testing.T) {
	list := append(sampleLeads(), entity.Lead{ID: "d", Fecha: "no es fecha", Nombre: "Sin Fecha"})
	client := &fakeClient{baseURL: "x", list: list}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	got := b.Visible()
	require.Len(t, got, 4)
	assert.Equal(t, "d", got[3].ID)
}

func TestSetSearch_InsensibleAAcentosYMayusculas(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	b.SetSearch("perez")
	got := b.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, "Juan Pérez", got[0].Nombre)

	b.SetSearch("GONZÁLEZ")
	got = b.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, "María González", got[0].Nombre)
}

func TestSetSearch_TambienBuscaEmailYWhatsapp(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	b.SetSearch("carlos@test.com")
	require.Len(t, b.Visible(), 1)

	b.SetSearch("+595992222222")
	got := b.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestSetStatusFilter_NuevoEsSinFlags(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	b.SetStatusFilter(crm.FilterNew)
	got := b.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	b.SetStatusFilter(crm.FilterConverted)
	got = b.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestSetTypeFilter_CombinaConLosDemas(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	b.SetTypeFilter(entity.TypeInversion)
	assert.Len(t, b.Visible(), 2)

	b.SetStatusFilter(crm.FilterContacted)
	got := b.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Toggle optimista
// ──────────────────────────────────────────────────────────────────────────────

func TestToggle_AplicaLocalYPersiste(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.Toggle(context.Background(), "a", entity.ColContacted))

	assert.Equal(t, []string{"a/contacted"}, client.updates)
	for _, l := range b.Visible() {
		if l.ID == "a" {
			assert.True(t, l.Contacted)
		}
	}
}

func TestToggle_ConvertedAcoplaContactedYLost(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: []entity.Lead{
		{ID: "a", Fecha: "1/8/2026, 10:00:00", Nombre: "Juan", Lost: true},
	}}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.Toggle(context.Background(), "a", entity.ColConverted))

	l := b.Visible()[0]
	assert.True(t, l.Converted)
	assert.True(t, l.Contacted)
	assert.False(t, l.Lost, "convertido apaga perdido")
}

func TestToggle_DobleToggleVuelveAlEstadoOriginal(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.Toggle(context.Background(), "b", entity.ColContacted))
	require.NoError(t, b.Toggle(context.Background(), "b", entity.ColContacted))

	for _, l := range b.Visible() {
		if l.ID == "b" {
			assert.True(t, l.Contacted, "dos toggles dejan el flag como estaba")
		}
	}
}

func TestToggle_RechazoDelBackendResincroniza(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))
	callsBefore := client.listCalls

	client.updateErr = errors.New("ID no encontrado")
	err := b.Toggle(context.Background(), "a", entity.ColContacted)

	assert.Error(t, err)
	assert.Equal(t, callsBefore+1, client.listCalls, "una sola relectura, sin reintentos")
	for _, l := range b.Visible() {
		if l.ID == "a" {
			assert.False(t, l.Contacted, "el estado optimista se descarta")
		}
	}
}

func TestToggle_IDOColumnaDesconocidos(t *testing.T) {
	client := &fakeClient{baseURL: "x", list: sampleLeads()}
	b := newBoard(t, client)
	require.NoError(t, b.Load(context.Background()))

	assert.ErrorIs(t, b.Toggle(context.Background(), "nope", entity.ColContacted), domain.ErrIDNotFound)
	assert.ErrorIs(t, b.Toggle(context.Background(), "a", entity.ColNombre), domain.ErrColumnNotFound)
	assert.Empty(t, client.updates, "nada llegó al backend")
}
