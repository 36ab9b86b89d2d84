package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guarani-living/leads-api/internal/domain"
	"github.com/guarani-living/leads-api/internal/domain/entity"
	"github.com/guarani-living/leads-api/internal/infrastructure/memory"
)

func TestList_SinInicializarFallaConHojaNoEncontrada(t *testing.T) {
	r := memory.NewUninitialized()

	_, err := r.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrSheetNotFound)

	// El primer Append inicializa la hoja.
	require.NoError(t, r.Append(context.Background(), &entity.Lead{ID: "a"}))
	rows, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAppend_ConservaElOrdenDeInsercion(t *testing.T) {
	r := memory.NewLeadRepository()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Append(ctx, &entity.Lead{ID: id}))
	}

	rows, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "b", rows[1].ID)
	assert.Equal(t, "c", rows[2].ID)
}

func TestList_DevuelveUnaCopia(t *testing.T) {
	r := memory.NewLeadRepository()
	ctx := context.Background()
	require.NoError(t, r.Append(ctx, &entity.Lead{ID: "a", Nombre: "Juan"}))

	rows, err := r.List(ctx)
	require.NoError(t, err)
	rows[0].Nombre = "Pisado"

	fresh, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Juan", fresh[0].Nombre)
}

func TestUpdateFields_AplicaTextoYFlags(t *testing.T) {
	r := memory.NewLeadRepository()
	ctx := context.Background()
	require.NoError(t, r.Append(ctx, &entity.Lead{ID: "a", Nombre: "Juan"}))

	err := r.UpdateFields(ctx, "a", map[string]any{
		entity.ColNombre:    "Juan Pérez",
		entity.ColContacted: "true",
	})
	require.NoError(t, err)

	rows, _ := r.List(ctx)
	assert.Equal(t, "Juan Pérez", rows[0].Nombre)
	assert.True(t, rows[0].Contacted)
}

func TestUpdateFields_IDInexistenteNoMuta(t *testing.T) {
	r := memory.NewLeadRepository()
	ctx := context.Background()
	require.NoError(t, r.Append(ctx, &entity.Lead{ID: "a"}))

	err := r.UpdateFields(ctx, "nope", map[string]any{entity.ColContacted: true})
	assert.ErrorIs(t, err, domain.ErrIDNotFound)

	rows, _ := r.List(ctx)
	assert.False(t, rows[0].Contacted)
}

func TestUpdateFields_ColumnaInvalidaValidaAntesDeTocar(t *testing.T) {
	r := memory.NewLeadRepository()
	ctx := context.Background()
	require.NoError(t, r.Append(ctx, &entity.Lead{ID: "a"}))

	// Mezcla de columna válida e inválida: no se aplica nada.
	err := r.UpdateFields(ctx, "a", map[string]any{
		entity.ColContacted: true,
		"NoExiste":          "x",
	})
	assert.ErrorIs(t, err, domain.ErrColumnNotFound)

	rows, _ := r.List(ctx)
	assert.False(t, rows[0].Contacted)

	// La columna id tampoco es actualizable.
	err = r.UpdateFields(ctx, "a", map[string]any{entity.ColID: "b"})
	assert.ErrorIs(t, err, domain.ErrColumnNotFound)
}

func TestUpdateFields_PrimerMatchConIDsDuplicados(t *testing.T) {
	r := memory.NewLeadRepository()
	ctx := context.Background()
	require.NoError(t, r.Append(ctx, &entity.Lead{ID: "a", Nombre: "Primero"}))
	require.NoError(t, r.Append(ctx, &entity.Lead{ID: "a", Nombre: "Segundo"}))

	require.NoError(t, r.UpdateFields(ctx, "a", map[string]any{entity.ColContacted: true}))

	rows, _ := r.List(ctx)
	assert.True(t, rows[0].Contacted)
	assert.False(t, rows[1].Contacted, "solo la primera fila que matchea se actualiza")
}
