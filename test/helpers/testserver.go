package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/app"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/config"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/storage"
)

// TestServer levanta el servicio completo sobre un catálogo temporal.
type TestServer struct {
	Server    *httptest.Server
	ChartsDir string
	Store     *storage.ChartStore
}

// NewTestServer escribe las guías y el mapeo en un directorio temporal y
// arranca el router real con httptest.
func NewTestServer(t *testing.T, charts map[string]string, products map[string]string) *TestServer {
	t.Helper()

	chartsDir := t.TempDir()
	for key, content := range charts {
		path := filepath.Join(chartsDir, key+".json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("No se pudo escribir la guía de prueba %s: %v", key, err)
		}
	}

	mappingFile := filepath.Join(t.TempDir(), "products_map.json")
	if products == nil {
		products = map[string]string{}
	}
	mappingJSON, err := json.Marshal(products)
	if err != nil {
		t.Fatalf("No se pudo serializar el mapeo de prueba: %v", err)
	}
	if err := os.WriteFile(mappingFile, mappingJSON, 0o644); err != nil {
		t.Fatalf("No se pudo escribir el mapeo de prueba: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Charts.Dir = chartsDir
	cfg.Charts.MappingFile = mappingFile
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Fit.AdjustmentSlim = -1.0
	cfg.Fit.AdjustmentRegular = 0.0
	cfg.Fit.AdjustmentLoose = 1.0

	gin.SetMode(gin.TestMode)
	router, store, _ := app.SetupRouter(cfg)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:    server,
		ChartsDir: chartsDir,
		Store:     store,
	}
}

// SendRequest ejecuta una petición GET contra el servidor de prueba y
// devuelve la respuesta junto con el cuerpo como string.
func (ts *TestServer) SendRequest(t *testing.T, path string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	if err != nil {
		t.Fatalf("Error creando la petición HTTP: %v", err)
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Error enviando la petición HTTP: %v", err)
	}

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Error leyendo el cuerpo de la respuesta: %v", err)
	}
	defer res.Body.Close()

	return res, string(bodyBytes)
}

// WriteChart añade o reemplaza una guía en el catálogo temporal.
// Útil para probar que los fallos no envenenan el cache.
func (ts *TestServer) WriteChart(t *testing.T, key, content string) {
	t.Helper()
	path := filepath.Join(ts.ChartsDir, key+".json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("No se pudo escribir la guía %s: %v", key, err)
	}
}
