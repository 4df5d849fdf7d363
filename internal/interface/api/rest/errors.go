package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/services"
)

type errorStatus struct {
	err     error
	status  int
	message string
}

var errorStatuses = []errorStatus{
	{services.ErrPasswordsMismatch, http.StatusBadRequest, "Passwords do not match"},
	{services.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
	{services.ErrInvalidRegistration, http.StatusBadRequest, "Name, email and password are required"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "Invalid status value. Only 'true' or 'false' are allowed."},
	{services.ErrInvalidLoggedInBefore, http.StatusBadRequest, "Invalid date format for 'loggedInBefore'"},
	{services.ErrInvalidLoggedInAfter, http.StatusBadRequest, "Invalid date format for 'loggedInAfter'"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
}

// respondError writes the status and message for a service error. Anything
// unmapped is a 500 and gets logged under op.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			c.JSON(es.status, gin.H{"message": es.message})
			return
		}
	}

	logger.Error(op+"() error", zap.Error(err))
	c.JSON(
		http.StatusInternalServerError,
		gin.H{"message": "Internal server error"},
	)
}

func respondInvalidBody(c *gin.Context, details any) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid request body",
		"details": details,
	})
}
