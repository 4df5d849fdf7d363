package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	domain "user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/interface/api/rest/dto/user"
	"user-accounts-api/internal/interface/api/rest/middleware"
	"user-accounts-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	tokens ports.TokenService,
	denylist ports.TokenDenylist,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	requireToken := middleware.RequireToken(tokens, denylist, logger)

	r.POST(RouteCreateUser, uc.CreateUserHandler)
	r.POST(RouteBulkCreate, uc.BulkCreateUsersHandler)
	r.GET(RouteGetAllUsers, requireToken, uc.GetAllUsersHandler)
	r.GET(RouteFindUsers, requireToken, uc.FindUsersHandler)

	byID := r.Group(RouteUser,
		middleware.IsNumericID(),
		middleware.UserExists(userService, logger),
		requireToken,
		middleware.HasPermissions(),
	)
	byID.GET("", uc.GetUserHandler)
	byID.PUT("", uc.UpdateUserHandler)
	byID.DELETE("", uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	registerUser(c, uc.userService, uc.logger)
}

func registerUser(c *gin.Context, userService ports.UserService, logger *zap.Logger) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, gin.H{"body": err.Error()})
		return
	}
	if errs := validator.ValidateRegistration(req); errs != nil {
		respondInvalidBody(c, errs)
		return
	}

	u, err := userService.RegisterUser(c.Request.Context(), user.ToDomainRegistration(req))
	if err != nil {
		respondError(c, logger, "RegisterUser", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User created successfully with ID: %d", u.ID),
	})
}

// BulkCreateUsersHandler reports per-entry failures in the counts, so only a
// malformed body is an error.
func (uc *UserController) BulkCreateUsersHandler(c *gin.Context) {
	var req user.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, gin.H{"body": err.Error()})
		return
	}

	res := uc.userService.BulkRegisterUsers(c.Request.Context(), user.ToDomainRegistrations(req.Users))

	c.JSON(http.StatusOK, user.ToResponseBulkResult(res))
}

func (uc *UserController) GetAllUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindActiveUsers(c.Request.Context())
	if err != nil {
		respondError(c, uc.logger, "FindActiveUsers", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) FindUsersHandler(c *gin.Context) {
	users, err := uc.userService.FilterUsers(c.Request.Context(), domain.FilterParams{
		Status:         c.Query("status"),
		Name:           c.Query("name"),
		LoggedInBefore: c.Query("loggedInBefore"),
		LoggedInAfter:  c.Query("loggedInAfter"),
	})
	if err != nil {
		respondError(c, uc.logger, "FilterUsers", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	u, err := uc.userService.FindUserByID(c.Request.Context(), middleware.UserIDFrom(c))
	if err != nil {
		respondError(c, uc.logger, "FindUserByID", err)
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"message": "User not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	var req user.UpdateRequest
	// an empty body is a valid no-op update
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondInvalidBody(c, gin.H{"body": err.Error()})
		return
	}
	if errs := validator.ValidateUpdate(req); errs != nil {
		respondInvalidBody(c, errs)
		return
	}

	err := uc.userService.UpdateUser(c.Request.Context(), middleware.UserIDFrom(c), user.ToDomainChanges(req))
	if err != nil {
		respondError(c, uc.logger, "UpdateUser", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	if err := uc.userService.DeleteUser(c.Request.Context(), middleware.UserIDFrom(c)); err != nil {
		respondError(c, uc.logger, "DeleteUser", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
