package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/domain/user"
)

const (
	ParamID   = "id"
	CtxUserID = "userID"
)

// IsNumericID rejects a non-numeric :id and stores the parsed value.
func IsNumericID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(ParamID), 10, 63)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(
				http.StatusBadRequest,
				gin.H{"message": "User ID must be a positive number"},
			)
			return
		}

		c.Set(CtxUserID, user.ID(id))

		c.Next()
	}
}

// UserExists must run after IsNumericID.
func UserExists(userService ports.UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := userService.FindUserByID(c.Request.Context(), UserIDFrom(c))
		if err != nil {
			logger.Error("FindUserByID() error", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				gin.H{"message": "Internal server error"},
			)
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(
				http.StatusNotFound,
				gin.H{"message": "User not found"},
			)
			return
		}

		c.Next()
	}
}

// HasPermissions lets admins through and everyone else only to their own id.
// It must run after RequireToken and IsNumericID.
func HasPermissions() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || (!claims.IsAdmin() && claims.UserID != uint64(UserIDFrom(c))) {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "Unauthorized"},
			)
			return
		}

		c.Next()
	}
}

func UserIDFrom(c *gin.Context) user.ID {
	id, _ := c.Get(CtxUserID)
	uid, _ := id.(user.ID)
	return uid
}
