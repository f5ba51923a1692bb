package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wellnest/server/internal/apperrors"
	"github.com/wellnest/server/internal/helpers"
	"github.com/wellnest/server/internal/models"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr   *apperrors.ValidationError
		notFoundErr     *apperrors.NotFoundError
		forbiddenErr    *apperrors.ForbiddenError
		invalidStateErr *apperrors.InvalidStateError
		conflictErr     *apperrors.ConflictError
		transactionErr  *apperrors.TransactionError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse(validationErr.Error()))
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, helpers.ErrorResponse(notFoundErr.Error()))
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, helpers.ErrorResponse(forbiddenErr.Error()))
	case errors.As(err, &invalidStateErr):
		c.JSON(http.StatusConflict, helpers.ErrorResponse(invalidStateErr.Error()))
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, helpers.ErrorResponse(conflictErr.Error()))
	case errors.As(err, &transactionErr):
		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("approval could not be committed, please retry"))
	default:
		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("internal server error"))
	}
}

// identityFromContext pulls the identity the auth middleware stored.
func identityFromContext(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get("identity")
	if !exists {
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
		return models.Identity{}, false
	}

	identity, ok := value.(models.Identity)
	if !ok {
		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid identity format"))
		return models.Identity{}, false
	}

	return identity, true
}
