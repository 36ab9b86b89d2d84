package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guarani-living/leads-api/internal/application/settings"
)

func TestNewStore_ArchivoInexistenteArrancaVacio(t *testing.T) {
	st, err := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	assert.Empty(t, st.EndpointURL())
	assert.Empty(t, st.SessionToken())
}

func TestNewStore_ArchivoIlegibleFalla(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o644))

	_, err := settings.NewStore(path)
	assert.Error(t, err, "un archivo corrupto no se pisa en silencio")
}

func TestSetEndpointURL_PersisteEntreInstancias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := settings.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, st.SetEndpointURL("https://backend.example/exec"))

	reabierto, err := settings.NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example/exec", reabierto.EndpointURL())
}

func TestSessionToken_GuardarYBorrar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := settings.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, st.SetSessionToken("un-token"))
	assert.Equal(t, "un-token", st.SessionToken())

	require.NoError(t, st.ClearSession())
	assert.Empty(t, st.SessionToken())

	// El borrado también persiste.
	reabierto, err := settings.NewStore(path)
	require.NoError(t, err)
	assert.Empty(t, reabierto.SessionToken())
}

func TestStore_LasClavesNoSePisanEntreSi(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := settings.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, st.SetEndpointURL("https://backend.example/exec"))
	require.NoError(t, st.SetSessionToken("un-token"))
	require.NoError(t, st.ClearSession())

	assert.Equal(t, "https://backend.example/exec", st.EndpointURL())
}
