package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/makeup-studio/internal/auth"
	"github.com/BruksfildServices01/makeup-studio/internal/config"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
)

const ContextIdentity = "identity"

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			c.Abort()
			return
		}

		claims, err := auth.Parse(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		c.Set(ContextIdentity, claims.Identity())
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			httperr.Unauthorized(c, "unauthenticated", "Authentication is required.")
			c.Abort()
			return
		}
		if !id.HasRole(role) {
			httperr.Forbidden(c, httperr.CodeForbidden, "Insufficient role.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
