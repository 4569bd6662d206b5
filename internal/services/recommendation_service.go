package services

import (
	"context"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/algorithms"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/logger"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/models"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/services/dto"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/storage"
	"github.com/locuraseguraepi-cell/calculadora-talla/pkg/apperrors"
)

type RecommendationService interface {
	// RecommendSize подбирает размер по ключу гида, измерению и fit.
	RecommendSize(ctx context.Context, chartKey string, value float64, fit models.FitType) (*dto.RecommendationResponse, error)

	// RecommendSizeForProduct сначала находит гид по product_id.
	RecommendSizeForProduct(ctx context.Context, productID string, value float64, fit models.FitType) (*dto.RecommendationResponse, error)

	// GetChart возвращает гид как есть (для debug-эндпоинта /charts).
	GetChart(ctx context.Context, chartKey string) (*models.SizeChart, error)
}

type recommendationService struct {
	store      *storage.ChartStore
	productMap *storage.ProductMap
	fitTable   map[models.FitType]float64
}

func NewRecommendationService(
	store *storage.ChartStore,
	productMap *storage.ProductMap,
	fitAdjustments map[string]float64,
) RecommendationService {
	// Таблица копируется один раз при старте и дальше только читается.
	fitTable := make(map[models.FitType]float64, len(fitAdjustments))
	for fit, offset := range fitAdjustments {
		fitTable[models.FitType(fit)] = offset
	}
	return &recommendationService{
		store:      store,
		productMap: productMap,
		fitTable:   fitTable,
	}
}

func (s *recommendationService) RecommendSize(ctx context.Context, chartKey string, value float64, fit models.FitType) (*dto.RecommendationResponse, error) {
	chart, err := s.store.GetChart(ctx, chartKey)
	if err != nil {
		return nil, err
	}

	// Fit-смещение - чистое сложение. Сравнения идут по неокругленному
	// значению; округление - только при формировании ответа.
	target := value + s.fitTable[fit]

	size, mode, err := algorithms.ResolveSize(chart, target)
	if err != nil {
		return nil, err
	}

	logger.CtxDebug(ctx, "talla resuelta",
		"chart_key", chart.Key,
		"target", target,
		"size", size,
		"mode", string(mode),
	)

	return &dto.RecommendationResponse{
		RecommendedSize:   size,
		TargetMeasurement: algorithms.Round2(target),
		Unit:              chart.Unit,
		Mode:              mode,
		ChartKey:          chart.Key,
		ChartName:         chart.Name,
	}, nil
}

func (s *recommendationService) RecommendSizeForProduct(ctx context.Context, productID string, value float64, fit models.FitType) (*dto.RecommendationResponse, error) {
	chartKey, ok := s.productMap.ChartKey(productID)
	if !ok {
		logger.CtxWarn(ctx, "producto sin guía asignada", "product_id", productID)
		return nil, apperrors.ErrProductNotFound(productID)
	}
	return s.RecommendSize(ctx, chartKey, value, fit)
}

func (s *recommendationService) GetChart(ctx context.Context, chartKey string) (*models.SizeChart, error) {
	return s.store.GetChart(ctx, chartKey)
}
