package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

func RequestLogger(lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lg.LogAPI(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
