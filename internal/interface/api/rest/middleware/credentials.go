package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-accounts-api/internal/interface/api/rest/dto/auth"
	"user-accounts-api/internal/interface/api/rest/validator"
)

const CtxLoginRequest = "loginRequest"

// ValidateCredentials binds the login body once and hands it to the handler
// through the context.
func ValidateCredentials() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Invalid request body",
				"details": gin.H{"body": err.Error()},
			})
			return
		}
		if errs := validator.ValidateLogin(req); errs != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"message": "Email and password are required",
				"details": errs,
			})
			return
		}

		c.Set(CtxLoginRequest, req)

		c.Next()
	}
}

func LoginRequestFrom(c *gin.Context) (auth.LoginRequest, bool) {
	v, ok := c.Get(CtxLoginRequest)
	if !ok {
		return auth.LoginRequest{}, false
	}
	req, ok := v.(auth.LoginRequest)
	return req, ok
}
