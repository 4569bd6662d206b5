package dto

import "github.com/locuraseguraepi-cell/calculadora-talla/internal/models"

// RecommendSizeQuery - параметры запроса GET /recommend-size.
// value обязателен и строго положителен; fit опционален и по умолчанию
// трактуется как "regular" (неизвестные значения отклоняются валидацией,
// а не молча заменяются дефолтом).
type RecommendSizeQuery struct {
	ChartKey string  `form:"chart_key" json:"chart_key" validate:"required"`
	Value    float64 `form:"value" json:"value" validate:"required,gt=0"`
	Fit      string  `form:"fit" json:"fit" validate:"omitempty,is-fit-type"`
}

// RecommendByProductQuery - параметры GET /products/:product_id/recommend-size.
// chart_key определяется по продукту через products_map.json.
type RecommendByProductQuery struct {
	Value float64 `form:"value" json:"value" validate:"required,gt=0"`
	Fit   string  `form:"fit" json:"fit" validate:"omitempty,is-fit-type"`
}

// RecommendationResponse - результат подбора размера.
// target_measurement округляется до 2 знаков ТОЛЬКО для отображения:
// сравнения выполняются на неокругленном значении.
type RecommendationResponse struct {
	RecommendedSize   string           `json:"recommended_size"`
	TargetMeasurement float64          `json:"target_measurement"`
	Unit              string           `json:"unit"`
	Mode              models.MatchMode `json:"mode"`
	ChartKey          string           `json:"chart_key"`
	ChartName         string           `json:"chart_name"`
}
