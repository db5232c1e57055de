package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "assetdesk/internal/errors"
	"assetdesk/internal/logger"
	"assetdesk/internal/middleware"
	"assetdesk/internal/models"
	"assetdesk/internal/services"
)

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// getActor extracts the authenticated actor from the Gin context.
// Returns ErrUnauthorized if not present.
func getActor(c *gin.Context) (services.Actor, error) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return services.Actor{}, apperrors.ErrUnauthorized
	}
	role, _ := c.Get(middleware.ContextRole)
	actor := services.Actor{ID: userID.(string)}
	if r, ok := role.(models.Role); ok {
		actor.Role = r
	}
	return actor, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
