package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler *HealthHandler
	SizingHandler *SizingHandler
	ChartHandler  *ChartHandler
}
