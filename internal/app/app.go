package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/config"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/handlers"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/logger"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/metrics"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/middleware"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/routes"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/services"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/storage"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/validator"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	logger.Info("Charts catalog", "dir", cfg.Charts.Dir, "mapping", cfg.Charts.MappingFile)

	ginRouter, store, productMap := SetupRouter(cfg)

	// Прогрев кеша гидов по маппингу продуктов (опционально)
	if cfg.Charts.Preload {
		preloader := workers.NewPreloadWorker(store, productMap)
		preloader.Start(context.Background())
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает все зависимости и возвращает готовый *gin.Engine
// вместе со стором и маппингом (их использует preload-воркер и тесты).
func SetupRouter(cfg *config.Config) (*gin.Engine, *storage.ChartStore, *storage.ProductMap) {
	loader := storage.NewFileLoader(cfg.Charts.Dir)
	store := storage.NewChartStore(loader)
	productMap := storage.LoadProductMap(cfg.Charts.MappingFile)

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, store, productMap)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, store, productMap
}

func initializeServices(cfg *config.Config, store *storage.ChartStore, productMap *storage.ProductMap) *services.ServiceContainer {
	recommendationService := services.NewRecommendationService(store, productMap, cfg.FitAdjustments())

	return &services.ServiceContainer{
		RecommendationService: recommendationService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		HealthHandler: handlers.NewHealthHandler(baseHandler),
		SizingHandler: handlers.NewSizingHandler(baseHandler, services.RecommendationService),
		ChartHandler:  handlers.NewChartHandler(baseHandler, services.RecommendationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ProcessTimeMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(metrics.Middleware())
	return router
}
