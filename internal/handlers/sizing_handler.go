package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/models"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/services"
	"github.com/locuraseguraepi-cell/calculadora-talla/internal/services/dto"
	"github.com/locuraseguraepi-cell/calculadora-talla/pkg/apperrors"
)

type SizingHandler struct {
	*BaseHandler
	recommendationService services.RecommendationService
}

func NewSizingHandler(base *BaseHandler, recommendationService services.RecommendationService) *SizingHandler {
	return &SizingHandler{
		BaseHandler:           base,
		recommendationService: recommendationService,
	}
}

func (h *SizingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/recommend-size", h.RecommendSize)
	r.GET("/products/:product_id/recommend-size", h.RecommendSizeForProduct)
}

// RecommendSize - основной эндпоинт подбора размера.
// GET /recommend-size?chart_key=VELILLA-333&value=52.5&fit=slim
func (h *SizingHandler) RecommendSize(c *gin.Context) {
	var req dto.RecommendSizeQuery
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	// Пустой fit валиден и означает regular; любое другое значение уже
	// прошло через is-fit-type.
	fit, _ := models.ParseFit(req.Fit)

	response, err := h.recommendationService.RecommendSize(c.Request.Context(), req.ChartKey, req.Value, fit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RecommendSizeForProduct подбирает размер по продукту: сначала ищет
// привязанный chart_key в products_map.json.
// GET /products/:product_id/recommend-size?value=52.5
func (h *SizingHandler) RecommendSizeForProduct(c *gin.Context) {
	productID := c.Param("product_id")
	if productID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("product_id es obligatorio"))
		return
	}

	var req dto.RecommendByProductQuery
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	fit, _ := models.ParseFit(req.Fit)

	response, err := h.recommendationService.RecommendSizeForProduct(c.Request.Context(), productID, req.Value, fit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
