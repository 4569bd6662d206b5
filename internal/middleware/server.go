package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locuraseguraepi-cell/calculadora-talla/internal/logger"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// processTimeWriter вписывает X-Process-Time непосредственно перед первой
// записью ответа: после того как gin отдал тело, менять заголовки поздно.
type processTimeWriter struct {
	gin.ResponseWriter
	start    time.Time
	injected bool
}

func (w *processTimeWriter) inject() {
	if w.injected {
		return
	}
	w.injected = true
	elapsed := time.Since(w.start).Seconds()
	w.Header().Set("X-Process-Time", strconv.FormatFloat(elapsed, 'f', -1, 64))
}

func (w *processTimeWriter) WriteHeader(statusCode int) {
	w.inject()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *processTimeWriter) Write(data []byte) (int, error) {
	w.inject()
	return w.ResponseWriter.Write(data)
}

func (w *processTimeWriter) WriteString(s string) (int, error) {
	w.inject()
	return w.ResponseWriter.WriteString(s)
}

// ProcessTimeMiddleware добавляет в каждый ответ заголовок X-Process-Time
// с длительностью обработки в секундах, как в историческом каталоге.
func ProcessTimeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &processTimeWriter{ResponseWriter: c.Writer, start: time.Now()}
		c.Next()
	}
}

// LoggingMiddleware логирует каждый запрос вместе с его длительностью.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
			slog.Int("size_bytes", c.Writer.Size()),
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Server Error", fields...)
		} else if c.Writer.Status() >= 400 {
			log.Warn("HTTP Client Error", fields...)
		} else {
			log.Info("HTTP Request", fields...)
		}
	}
}

// CORSMiddleware отдает заголовки CORS для списка разрешенных origins из
// конфигурации. Сервис read-only, поэтому разрешен только GET.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "*")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
