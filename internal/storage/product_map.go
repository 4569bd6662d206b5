package storage

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/logger"
)

// ProductMap maps product ids to chart keys. It is loaded once at startup
// from products_map.json and never reloaded.
type ProductMap struct {
	entries map[string]string
}

// LoadProductMap reads the mapping file. A missing or malformed file is
// logged and yields an empty map: the mapping is an optional convenience
// layer, the chart_key endpoints keep working without it.
func LoadProductMap(path string) *ProductMap {
	pm := &ProductMap{entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("¡ERROR! Archivo de mapeo no encontrado", "path", path, "error", err.Error())
		return pm
	}

	if err := json.Unmarshal(data, &pm.entries); err != nil {
		logger.Error("¡ERROR! El archivo de mapeo JSON está mal formateado", "path", path, "error", err.Error())
		pm.entries = make(map[string]string)
		return pm
	}

	logger.Info("Mapeo de productos cargado", "path", path, "products", len(pm.entries))
	return pm
}

// NewProductMap builds a map from in-memory entries. Used by tests.
func NewProductMap(entries map[string]string) *ProductMap {
	if entries == nil {
		entries = make(map[string]string)
	}
	return &ProductMap{entries: entries}
}

// ChartKey returns the chart key assigned to a product.
func (p *ProductMap) ChartKey(productID string) (string, bool) {
	key, ok := p.entries[productID]
	return key, ok
}

// ChartKeys returns the distinct chart keys referenced by the map,
// sorted for deterministic preload order.
func (p *ProductMap) ChartKeys() []string {
	seen := make(map[string]bool, len(p.entries))
	var keys []string
	for _, key := range p.entries {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of product entries.
func (p *ProductMap) Len() int {
	return len(p.entries)
}
