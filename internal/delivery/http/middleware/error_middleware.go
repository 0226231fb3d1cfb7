package middleware

import (
	"errors"
	"net/http"

	"humusgarden-backend/internal/delivery/http/response"
	"humusgarden-backend/pkg/apperror"
	"humusgarden-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	MsgInternal = "Error interno del servidor"
	MsgNotFound = "Ruta no encontrada"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("Request failed",
					"status", appErr.Code,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Unhandled error", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, MsgInternal)
	}
}

// Recovery turns panics into the standard JSON error body
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Panic recovered",
			"error", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		response.AbortWithError(c, http.StatusInternalServerError, MsgInternal)
	})
}

// NoRoute answers unknown paths with JSON instead of gin's text page.
// ErrorHandler must be registered globally to render it.
func NoRoute(c *gin.Context) {
	_ = c.Error(apperror.NotFound(MsgNotFound))
}
