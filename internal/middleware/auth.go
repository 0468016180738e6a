package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/troia-reservas/internal/config"
	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

const (
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

// RevocationChecker answers whether a token id was signed out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware valida o bearer token. revoked pode ser nil (sem Redis).
func AuthMiddleware(cfg *config.Config, revoked RevocationChecker, lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Faça login para continuar.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token_payload", "Sessão inválida ou expirada.")
			c.Abort()
			return
		}

		jti, _ := claims["jti"].(string)
		if revoked != nil && jti != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), jti)
			if err != nil {
				lg.Warn("AUTH", "revocation check failed: "+err.Error())
			}
			if isRevoked {
				httperr.Unauthorized(c, "token_revoked", "Sessão encerrada. Faça login novamente.")
				c.Abort()
				return
			}
		}

		role, _ := claims["role"].(string)

		var expiry time.Time
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			expiry = exp.Time
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Set(ContextTokenID, jti)
		c.Set(ContextTokenExpiry, expiry)

		c.Next()
	}
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// ActorID is UserID as the pointer audit events carry.
func ActorID(c *gin.Context) *uuid.UUID {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}
