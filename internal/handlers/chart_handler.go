package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/services"
	"github.com/locuraseguraepi-cell/calculadora-talla/pkg/apperrors"
)

type ChartHandler struct {
	*BaseHandler
	recommendationService services.RecommendationService
}

func NewChartHandler(base *BaseHandler, recommendationService services.RecommendationService) *ChartHandler {
	return &ChartHandler{
		BaseHandler:           base,
		recommendationService: recommendationService,
	}
}

func (h *ChartHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/charts/:chart_key", h.GetChartDetails)
}

// GetChartDetails - debug-эндпоинт: отдает гид как он лежит на диске.
// Ответ кешируемый для промежуточных прокси (max-age=3600).
func (h *ChartHandler) GetChartDetails(c *gin.Context) {
	chartKey := c.Param("chart_key")
	if chartKey == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("chart_key es obligatorio"))
		return
	}

	chart, err := h.recommendationService.GetChart(c.Request.Context(), chartKey)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/json; charset=utf-8", chart.Raw)
}
