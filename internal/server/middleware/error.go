package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/zoo-api/internal/core/domain"
	"github.com/nulzo/zoo-api/pkg/api"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached by a handler.
// Client errors carry a "message", server errors carry the failure under "error".
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *domain.Error
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Error("Request failed",
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Error(appErr.Log),
				)
				c.JSON(appErr.Code, api.ErrorResponse{Error: appErr.Message})
			} else {
				c.JSON(appErr.Code, api.MessageResponse{Message: appErr.Message})
			}
			c.Abort()
			return
		}

		logger.Error("Unhandled Error",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		c.Abort()
	}
}
