package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/logger"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/metrics"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/models"
	"github.com/locuraseguraepi-cell/calculadora-talla/pkg/apperrors"
)

// ChartStore is a read-through cache of size charts keyed by chart key.
//
// Population is lazy: the first request for a key reads <key>.json through
// the Loader, every later request is a memory read. Entries live for the
// process lifetime; there is no eviction and no TTL, a restart picks up
// file changes. Negative results are NOT cached, so a chart that appears
// on disk later starts resolving without a restart.
//
// Concurrent first access to the same key may load the file more than
// once. That is fine: loads are deterministic and side-effect free, so
// last-write-wins leaves a consistent cache.
type ChartStore struct {
	loader Loader

	mu    sync.RWMutex
	cache map[string]*models.SizeChart
}

// NewChartStore creates an empty store backed by the given loader.
func NewChartStore(loader Loader) *ChartStore {
	return &ChartStore{
		loader: loader,
		cache:  make(map[string]*models.SizeChart),
	}
}

// GetChart returns the chart for key, loading it on first access.
//
// Missing and malformed resources both come back as "not found" to the
// caller; the distinction lives in the logs (missing = warning,
// malformed = error) and in the internal error code.
func (s *ChartStore) GetChart(ctx context.Context, key string) (*models.SizeChart, error) {
	if !SafeResourceKey(key) {
		return nil, apperrors.NewBadRequestError("chart_key inválido: " + key)
	}

	s.mu.RLock()
	chart, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		metrics.ChartCacheHit()
		return chart, nil
	}
	metrics.ChartCacheMiss()

	start := time.Now()
	data, err := s.loader.Load(ctx, key+".json")
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			metrics.ChartLoadFailure("missing")
			logger.CtxWarn(ctx, "Guía de tallas no encontrada", "chart_key", key)
			return nil, apperrors.ErrChartNotFound(key)
		}
		metrics.ChartLoadFailure("io")
		logger.CtxWithError(ctx, "Error leyendo la guía de tallas", err, "chart_key", key)
		return nil, apperrors.InternalError(err)
	}

	var parsed models.SizeChart
	if err := json.Unmarshal(data, &parsed); err != nil {
		metrics.ChartLoadFailure("malformed")
		logger.CtxWithError(ctx, "La guía JSON está mal formateada", err, "chart_key", key)
		return nil, apperrors.ErrChartMalformed(key, err)
	}

	parsed.ApplyDefaults(key)
	parsed.Raw = data
	logger.ChartLog("load", key, time.Since(start), nil)

	s.mu.Lock()
	s.cache[key] = &parsed
	s.mu.Unlock()

	return &parsed, nil
}

// Cached reports whether key is already in memory. Used by the preload
// worker to report progress and by tests.
func (s *ChartStore) Cached(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cache[key]
	return ok
}
