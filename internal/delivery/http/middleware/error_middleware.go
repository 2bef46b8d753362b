package middleware

import (
	"errors"
	"net/http"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			} else {
				// Unexpected errors get a generic localized message; the
				// raw error text goes to details for operators and logs.
				logger.Log.Error("Unhandled error in request pipeline", "error", err)
				response.Error(c, http.StatusInternalServerError, domain.MsgUnexpected, err.Error())
			}
		}
	}
}
