package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/handlers"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// Пути без префикса версии: публичный контракт сервиса исторически
// живет в корне (/health, /recommend-size, /charts/...).
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers, // <-- Принимаем ГОТОВЫЕ хэндлеры
) {
	root := ginRouter.Group("/")
	{
		appHandlers.HealthHandler.RegisterRoutes(root)
		appHandlers.SizingHandler.RegisterRoutes(root)
		appHandlers.ChartHandler.RegisterRoutes(root)
	}

	// Prometheus-метрики для скрейпа
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
