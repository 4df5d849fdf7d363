package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/interface/api/rest/dto/auth"
	"user-accounts-api/internal/interface/api/rest/middleware"
)

type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
	tokens ports.TokenService,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteLogin, middleware.ValidateCredentials(), ac.LoginHandler)
	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogout, middleware.RequireTokenShape(tokens), ac.LogoutHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	req, ok := middleware.LoginRequestFrom(c)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"message": "Email and password are required"},
		)
		return
	}

	tok, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, ac.logger, "Login", err)
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		Token:     tok.Token,
		TokenType: middleware.HeaderToken,
		ExpiresIn: int64(tok.ExpiresIn.Seconds()),
	})
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	registerUser(c, ac.userService, ac.logger)
}

func (ac *AuthController) LogoutHandler(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			gin.H{"message": "Token is required"},
		)
		return
	}

	if err := ac.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, ac.logger, "Logout", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
