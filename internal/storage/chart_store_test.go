package storage

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locuraseguraepi-cell/calculadora-talla/pkg/apperrors"
)

const velillaJSON = `{
  "name": "Velilla Serie 333",
  "unit": "cm",
  "ranges": [
    {"size": "S", "min": 46, "max": 50},
    {"size": "M", "min": 50, "max": 54}
  ]
}`

func TestChartStore_ReadThrough(t *testing.T) {
	loader := &MemoryLoader{Resources: map[string][]byte{
		"VELILLA-333.json": []byte(velillaJSON),
	}}
	store := NewChartStore(loader)
	ctx := context.Background()

	// Primer acceso: lectura del recurso
	chart, err := store.GetChart(ctx, "VELILLA-333")
	require.NoError(t, err)
	assert.Equal(t, "VELILLA-333", chart.Key)
	assert.Equal(t, "Velilla Serie 333", chart.Name)
	assert.Equal(t, "cm", chart.Unit)
	require.Len(t, chart.Ranges, 2)
	assert.True(t, store.Cached("VELILLA-333"))

	// Segundo acceso: mismo contenido, servido desde memoria.
	// Mutamos el loader para comprobar que NO se relee el recurso.
	loader.Resources["VELILLA-333.json"] = []byte(`{"ranges":[{"size":"XS","min":0,"max":1}]}`)

	again, err := store.GetChart(ctx, "VELILLA-333")
	require.NoError(t, err)
	assert.Equal(t, chart, again)
	assert.Equal(t, "Velilla Serie 333", again.Name)
}

func TestChartStore_MissingIsNotCached(t *testing.T) {
	loader := &MemoryLoader{Resources: map[string][]byte{}}
	store := NewChartStore(loader)
	ctx := context.Background()

	_, err := store.GetChart(ctx, "NUEVA")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "NUEVA")
	assert.False(t, store.Cached("NUEVA"))

	// El recurso aparece después: el siguiente acceso lo resuelve sin
	// reiniciar el proceso (los resultados negativos no se cachean).
	loader.Resources["NUEVA.json"] = []byte(velillaJSON)

	chart, err := store.GetChart(ctx, "NUEVA")
	require.NoError(t, err)
	assert.Equal(t, "NUEVA", chart.Key)
}

func TestChartStore_Malformed(t *testing.T) {
	loader := &MemoryLoader{Resources: map[string][]byte{
		"ROTA.json": []byte(`{"ranges": [`),
	}}
	store := NewChartStore(loader)

	_, err := store.GetChart(context.Background(), "ROTA")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	// Externamente es un 404 igual que una guía ausente...
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "ROTA")
	// ...pero el código interno distingue la causa.
	assert.Equal(t, apperrors.CodeChartMalformed, appErr.Code)
	// Ni el detalle del parser ni el código interno se serializan al
	// cliente: el cuerpo lleva el mismo código que una guía ausente.
	body, jsonErr := appErr.MarshalJSON()
	require.NoError(t, jsonErr)
	assert.NotContains(t, string(body), "unexpected end")
	assert.NotContains(t, string(body), string(apperrors.CodeChartMalformed))
	assert.Contains(t, string(body), string(apperrors.CodeNotFound))
	assert.False(t, store.Cached("ROTA"))
}

func TestChartStore_UnsafeKeys(t *testing.T) {
	store := NewChartStore(&MemoryLoader{})

	for _, key := range []string{"", "..", "a/b", `a\b`, "../../etc/passwd"} {
		_, err := store.GetChart(context.Background(), key)
		require.Error(t, err, "key %q", key)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode, "key %q", key)
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GUIA.json"), []byte(velillaJSON), 0o644))

	loader := NewFileLoader(dir)

	t.Run("existing file", func(t *testing.T) {
		data, err := loader.Load(context.Background(), "GUIA.json")
		require.NoError(t, err)
		assert.Equal(t, velillaJSON, string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(context.Background(), "NO-EXISTE.json")
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func TestSafeResourceKey(t *testing.T) {
	assert.True(t, SafeResourceKey("VELILLA-333"))
	assert.True(t, SafeResourceKey("guia_básica.v2"))
	assert.False(t, SafeResourceKey(""))
	assert.False(t, SafeResourceKey("."))
	assert.False(t, SafeResourceKey(".."))
	assert.False(t, SafeResourceKey("sub/dir"))
	assert.False(t, SafeResourceKey(`sub\dir`))
}
