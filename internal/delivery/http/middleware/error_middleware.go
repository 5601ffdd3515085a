package middleware

import (
	"errors"
	"net/http"

	"jobsite-backend/internal/delivery/http/response"
	"jobsite-backend/pkg/apperror"
	"jobsite-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors attached to the gin context into the
// standard response envelope. Unknown errors are logged server-side and
// reported to the client as a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("internal error",
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		logger.Log.Error("unhandled error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
