package integration_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locuraseguraepi-cell/calculadora-talla/test/helpers"
)

const velillaChart = `{
  "name": "Velilla Serie 333",
  "unit": "cm",
  "ranges": [
    {"size": "S", "min": 46, "max": 50},
    {"size": "M", "min": 50, "max": 54},
    {"size": "L", "min": 54, "max": 58}
  ]
}`

const overlapChart = `{
  "ranges": [
    {"size": "S", "min": 0, "max": 10},
    {"size": "M", "min": 10, "max": 20}
  ]
}`

const gapChart = `{
  "ranges": [
    {"size": "S", "min": 0, "max": 10},
    {"size": "L", "min": 20, "max": 30}
  ]
}`

func newServer(t *testing.T) *helpers.TestServer {
	return helpers.NewTestServer(t,
		map[string]string{
			"VELILLA-333": velillaChart,
			"SOLAPADA":    overlapChart,
			"CON-HUECO":   gapChart,
			"VACIA":       `{"name": "Sin rangos", "ranges": []}`,
			"ROTA":        `{"ranges": [`,
		},
		map[string]string{
			"pantalon-333-gris": "VELILLA-333",
		},
	)
}

type recommendation struct {
	RecommendedSize   string  `json:"recommended_size"`
	TargetMeasurement float64 `json:"target_measurement"`
	Unit              string  `json:"unit"`
	Mode              string  `json:"mode"`
	ChartKey          string  `json:"chart_key"`
	ChartName         string  `json:"chart_name"`
}

func decodeRecommendation(t *testing.T, body string) recommendation {
	t.Helper()
	var rec recommendation
	require.NoError(t, json.Unmarshal([]byte(body), &rec), "body: %s", body)
	return rec
}

func TestHealth(t *testing.T) {
	ts := newServer(t)

	res, body := ts.SendRequest(t, "/health")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"ok": true}`, body)
}

func TestRecommendSize(t *testing.T) {
	ts := newServer(t)

	t.Run("happy path with default fit", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/recommend-size?chart_key=VELILLA-333&value=52.5")
		require.Equal(t, http.StatusOK, res.StatusCode, "body: %s", body)

		rec := decodeRecommendation(t, body)
		assert.Equal(t, "M", rec.RecommendedSize)
		assert.Equal(t, 52.5, rec.TargetMeasurement)
		assert.Equal(t, "cm", rec.Unit)
		assert.Equal(t, "in-range", rec.Mode)
		assert.Equal(t, "VELILLA-333", rec.ChartKey)
		assert.Equal(t, "Velilla Serie 333", rec.ChartName)
	})

	t.Run("slim fit changes the recommended size", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/recommend-size?chart_key=VELILLA-333&value=50.5&fit=slim")
		require.Equal(t, http.StatusOK, res.StatusCode, "body: %s", body)

		rec := decodeRecommendation(t, body)
		assert.Equal(t, "S", rec.RecommendedSize)
		assert.Equal(t, 49.5, rec.TargetMeasurement)
	})

	t.Run("overlapping ranges: first in file order wins", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/recommend-size?chart_key=SOLAPADA&value=10")
		require.Equal(t, http.StatusOK, res.StatusCode, "body: %s", body)

		rec := decodeRecommendation(t, body)
		assert.Equal(t, "S", rec.RecommendedSize)
		assert.Equal(t, "in-range", rec.Mode)
	})

	t.Run("value in a gap: closest with first-order tie-break", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/recommend-size?chart_key=CON-HUECO&value=15")
		require.Equal(t, http.StatusOK, res.StatusCode, "body: %s", body)

		rec := decodeRecommendation(t, body)
		assert.Equal(t, "S", rec.RecommendedSize)
		assert.Equal(t, "closest", rec.Mode)
	})

	t.Run("unknown chart is a 404 naming the key", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/recommend-size?chart_key=MISSING&value=50")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, body, "MISSING")
	})

	t.Run("malformed chart is indistinguishable from a missing one", func(t *testing.T) {
		missingRes, missingBody := ts.SendRequest(t, "/recommend-size?chart_key=AUSENTE&value=50")
		malformedRes, malformedBody := ts.SendRequest(t, "/recommend-size?chart_key=ROTA&value=50")

		assert.Equal(t, http.StatusNotFound, missingRes.StatusCode)
		assert.Equal(t, http.StatusNotFound, malformedRes.StatusCode)
		// Mismo cuerpo salvo la clave: el cliente no puede saber si la
		// guía falta o está corrupta.
		assert.Equal(t,
			strings.ReplaceAll(missingBody, "AUSENTE", "ROTA"),
			malformedBody)
	})

	t.Run("chart without ranges is a 500", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/recommend-size?chart_key=VACIA&value=50")
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Contains(t, body, "VACIA")
	})

	t.Run("missing chart_key is a 400", func(t *testing.T) {
		res, _ := ts.SendRequest(t, "/recommend-size?value=50")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("non-positive value is a 400", func(t *testing.T) {
		res, _ := ts.SendRequest(t, "/recommend-size?chart_key=VELILLA-333&value=-5")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		res, _ = ts.SendRequest(t, "/recommend-size?chart_key=VELILLA-333&value=0")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("unknown fit is rejected, not defaulted", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/recommend-size?chart_key=VELILLA-333&value=50&fit=apretado")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Contains(t, body, "fit")
	})
}

func TestChartDetails(t *testing.T) {
	ts := newServer(t)

	t.Run("returns the raw document with a caching directive", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/charts/VELILLA-333")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "public, max-age=3600", res.Header.Get("Cache-Control"))
		assert.JSONEq(t, velillaChart, body)
	})

	t.Run("unknown chart is a 404", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/charts/NO-EXISTE")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, body, "NO-EXISTE")
	})
}

func TestRecommendSizeForProduct(t *testing.T) {
	ts := newServer(t)

	t.Run("mapped product resolves through its chart", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/products/pantalon-333-gris/recommend-size?value=52.5")
		require.Equal(t, http.StatusOK, res.StatusCode, "body: %s", body)

		rec := decodeRecommendation(t, body)
		assert.Equal(t, "M", rec.RecommendedSize)
		assert.Equal(t, "VELILLA-333", rec.ChartKey)
	})

	t.Run("unmapped product is a 404", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/products/producto-fantasma/recommend-size?value=52.5")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Contains(t, body, "producto-fantasma")
	})
}

// Un fallo de carga no envenena el cache: si la guía aparece en disco
// después del primer 404, la siguiente petición la resuelve.
func TestMissingChartIsRetriedOnNextRequest(t *testing.T) {
	ts := newServer(t)

	res, _ := ts.SendRequest(t, "/recommend-size?chart_key=NUEVA&value=48")
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	ts.WriteChart(t, "NUEVA", velillaChart)

	res, body := ts.SendRequest(t, "/recommend-size?chart_key=NUEVA&value=48")
	require.Equal(t, http.StatusOK, res.StatusCode, "body: %s", body)

	rec := decodeRecommendation(t, body)
	assert.Equal(t, "S", rec.RecommendedSize)
}

func TestRequestIDAndMetrics(t *testing.T) {
	ts := newServer(t)

	t.Run("every response carries a request id", func(t *testing.T) {
		res, _ := ts.SendRequest(t, "/health")
		assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
	})

	t.Run("every response carries the processing time", func(t *testing.T) {
		res, _ := ts.SendRequest(t, "/health")
		header := res.Header.Get("X-Process-Time")
		require.NotEmpty(t, header)
		seconds, err := strconv.ParseFloat(header, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, seconds, 0.0)
	})

	t.Run("metrics endpoint is exposed", func(t *testing.T) {
		res, body := ts.SendRequest(t, "/metrics")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, "talla_http_requests_total")
	})
}
