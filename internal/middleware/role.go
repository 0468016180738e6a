package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

type RoleLookup interface {
	RoleOf(ctx context.Context, userID uuid.UUID) (string, error)
}

// RequireAdmin lê o papel do banco a cada request, não do token.
func RequireAdmin(roles RoleLookup, lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			httperr.Unauthorized(c, "unauthorized", "Faça login para continuar.")
			c.Abort()
			return
		}

		role, err := roles.RoleOf(c.Request.Context(), userID)
		if err != nil || role != models.RoleAdmin {
			lg.LogSecurity("ADMIN_DENIED", userID.String()+" "+c.Request.Method+" "+c.FullPath())
			httperr.Forbidden(c, "forbidden", "Acesso restrito a administradores.")
			c.Abort()
			return
		}

		c.Set(ContextUserRole, role)
		c.Next()
	}
}
