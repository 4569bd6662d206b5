package apperrors

import (
	"fmt"
	"net/http"
)

/*
Этот файл содержит фабрики для доменных ошибок сервиса подбора размеров.

Важное правило из поведения оригинального каталога: снаружи клиент видит
только "гид не найден" (404), независимо от того, отсутствует файл или он
битый. Различие фиксируется во внутреннем коде ошибки и в логах.
*/

// =========================================================================
// Гиды размеров (size charts)
// =========================================================================

// ErrChartNotFound - гид с таким ключом не найден (404).
// Сообщение указывает ключ, как в оригинальном сервисе.
func ErrChartNotFound(chartKey string) *AppError {
	return NewNotFoundError("sizing", fmt.Sprintf("No se encontró la guía de tallas: %s", chartKey))
}

// ErrChartMalformed - файл гида существует, но JSON не парсится.
// Внешне коллапсирует в 404: клиенту безразлично, почему гида нет.
// Оборачиваемая ошибка остаётся для логов и никогда не сериализуется.
func ErrChartMalformed(chartKey string, err error) *AppError {
	return Wrap(
		err,
		CodeChartMalformed,
		"sizing",
		fmt.Sprintf("No se encontró la guía de tallas: %s", chartKey),
		http.StatusNotFound,
	)
}

// ErrChartEmpty - гид загружен, но не содержит ни одного диапазона.
// Это дефект конфигурации каталога, поэтому 500, а не 4xx.
func ErrChartEmpty(chartKey string) *AppError {
	return New(
		CodeChartEmpty,
		"sizing",
		fmt.Sprintf("La guía de tallas '%s' no tiene rangos definidos.", chartKey),
		http.StatusInternalServerError,
	)
}

// ErrRangeMissingLabel - диапазон без метки размера. Тоже дефект данных:
// отклоняем явно, вместо того чтобы вернуть пустую строку.
func ErrRangeMissingLabel(chartKey string, index int) *AppError {
	return New(
		CodeRangeMissingLabel,
		"sizing",
		fmt.Sprintf("La guía de tallas '%s' tiene un rango sin talla (posición %d).", chartKey, index),
		http.StatusInternalServerError,
	)
}

// =========================================================================
// Маппинг продуктов
// =========================================================================

// ErrProductNotFound - для product_id нет привязанного гида (404).
func ErrProductNotFound(productID string) *AppError {
	return NewNotFoundError("catalog", fmt.Sprintf("No se encontró una guía de tallas para el producto: %s", productID))
}
