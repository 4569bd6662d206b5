package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeUnknownError  ErrorCode = "UNKNOWN_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Дефекты каталога размерных гидов (ошибка конфигурации, не клиента)
	CodeChartEmpty        ErrorCode = "CHART_EMPTY"
	CodeChartMalformed    ErrorCode = "CHART_MALFORMED"
	CodeRangeMissingLabel ErrorCode = "RANGE_MISSING_LABEL"
)
