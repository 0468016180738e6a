package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, retryAfter time.Duration, err error)
	Limit() int
}

// RateLimit limita por IP. Sem limiter (Redis fora) nada é bloqueado.
func RateLimit(limiter Limiter, scope string, lg *logger.Logger) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, remaining, retry, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			lg.Warn("RATELIMIT", "limiter unavailable: "+err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			secs := int(math.Ceil(retry.Seconds()))
			c.Header("Retry-After", strconv.Itoa(secs))
			lg.LogSecurity("RATE_LIMIT", key)
			httperr.WriteDetails(c, http.StatusTooManyRequests, "too_many_requests",
				"Muitas tentativas. Aguarde um instante e tente novamente.",
				map[string]any{"retry_after": secs})
			c.Abort()
			return
		}

		c.Next()
	}
}
