package workers

import (
	"context"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/logger"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/storage"
)

// PreloadWorker прогревает кеш гидов при старте: загружает каждый
// уникальный гид, на который ссылается маппинг продуктов.
type PreloadWorker struct {
	store      *storage.ChartStore
	productMap *storage.ProductMap
}

func NewPreloadWorker(store *storage.ChartStore, productMap *storage.ProductMap) *PreloadWorker {
	return &PreloadWorker{store: store, productMap: productMap}
}

// Start выполняет прогрев в фоне, чтобы не задерживать запуск сервера.
// Ошибки загрузки отдельных гидов не фатальны: они уже залогированы
// стором и при первом реальном запросе загрузка повторится.
func (w *PreloadWorker) Start(ctx context.Context) {
	go w.preload(ctx)
}

func (w *PreloadWorker) preload(ctx context.Context) {
	keys := w.productMap.ChartKeys()
	logger.Info("Precargando datos iniciales...", "charts", len(keys))

	loaded := 0
	for _, key := range keys {
		select {
		case <-ctx.Done():
			logger.WorkerLog("preload", "cancelled", ctx.Err())
			return
		default:
		}

		if _, err := w.store.GetChart(ctx, key); err != nil {
			// Гид битый или отсутствует - стор уже записал причину.
			continue
		}
		loaded++
	}

	logger.WorkerLog("preload", "warmup", nil)
	logger.Info("Datos precargados", "loaded", loaded, "total", len(keys))
}
