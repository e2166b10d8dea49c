package middleware

import (
	"errors"
	"net/http"

	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors pushed with c.Error as the JSON envelope.
// Handlers that already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil && appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed", "request_id", requestIDFrom(c), "path", c.FullPath(), "error", appErr.Err)
			}
			var details interface{}
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Internal details stay in the log.
		logger.Log.Error("Internal Server Error", "request_id", requestIDFrom(c), "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
