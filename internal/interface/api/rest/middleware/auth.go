package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/infrastructure/jwt"
)

const (
	HeaderToken = "token"
	CtxClaims   = "claims"
)

// RequireToken admits requests carrying a signed, unexpired token that has
// not been revoked by a logout.
func RequireToken(tokens ports.TokenService, denylist ports.TokenDenylist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, tokens)
		if !ok {
			return
		}

		revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Error("IsRevoked() error", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"message": "Internal server error"},
			)
			return
		}
		if revoked {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "Token has been revoked"},
			)
			return
		}

		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// RequireTokenShape only checks signature and expiry, so that a second
// logout with the same token still succeeds.
func RequireTokenShape(tokens ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, tokens)
		if !ok {
			return
		}

		c.Set(CtxClaims, claims)

		c.Next()
	}
}

func parseToken(c *gin.Context, tokens ports.TokenService) (*jwt.Claims, bool) {
	tokenStr := strings.TrimSpace(c.GetHeader(HeaderToken))
	if tokenStr == "" {
		c.AbortWithStatusJSON(
			http.StatusUnauthorized,
			gin.H{"message": "Token is required"},
		)
		return nil, false
	}

	claims, err := tokens.ValidateToken(tokenStr)
	if err != nil {
		c.AbortWithStatusJSON(
			http.StatusUnauthorized,
			gin.H{"message": "Invalid token"},
		)
		return nil, false
	}

	return claims, true
}

func ClaimsFrom(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
