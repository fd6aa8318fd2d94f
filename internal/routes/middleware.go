package routes

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	applog "household-expenses/internal/log"
)

const headerRequestID = "X-Request-ID"

// requestLogger tags each request with an id, stores a request-scoped logger
// in the context and logs completion at a level chosen by status class.
func requestLogger(base *slog.Logger) gin.HandlerFunc {
	base = applog.WithComponent(base, applog.ComponentHTTP)
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Header(headerRequestID, requestID)

		logger := base.With(applog.FieldRequestID, requestID)
		c.Request = c.Request.WithContext(applog.WithContext(c.Request.Context(), logger))

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "HTTP request completed",
			applog.FieldMethod, c.Request.Method,
			applog.FieldPath, path,
			applog.FieldQuery, query,
			applog.FieldStatusCode, status,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, c.ClientIP(),
			applog.FieldUserAgent, c.Request.UserAgent())
	}
}

func recoverPanic(c *gin.Context, recovered any) {
	applog.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "panic recovered",
		applog.FieldPath, c.Request.URL.Path,
		applog.FieldError, fmt.Sprint(recovered))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"mensagem": "Erro interno ao processar a requisição"})
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		c.Next()
	}
}

func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(b)
}
