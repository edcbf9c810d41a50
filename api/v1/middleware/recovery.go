package middleware

import (
	"fmt"
	"io"

	"go_redirect/internal/httpx"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery turns a handler panic into the unified 500 response
func Recovery(logger *logrus.Entry) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(httpx.RequestIDKey),
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		}).Error("handler panic recovered")

		httpx.AbortErr(c, httpx.ErrInternalError("internal error", fmt.Errorf("panic: %v", recovered)))
	})
}
