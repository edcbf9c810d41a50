package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// Response represents the standard API response structure
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ListData represents the standard list response data structure
type ListData struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
}

// OK sends a successful response with default message "success"
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// OKItems sends a successful list response
func OKItems(c *gin.Context, items any, total int64) {
	OK(c, ListData{Items: items, Total: total})
}

// FailErr sends an error response from an AppError.
// AppError.Err is logged with the request id but never returned to the client.
func FailErr(c *gin.Context, err *AppError) {
	if err.Err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"code":       err.Code,
			"path":       c.Request.URL.Path,
		}).WithError(err.Err).Error(err.Message)
	}

	c.JSON(err.HTTPStatus, Response{
		Code:    err.Code,
		Message: err.Message,
		Data:    err.Data,
	})
}

// AbortErr sends the error response and stops the handler chain
func AbortErr(c *gin.Context, err *AppError) {
	FailErr(c, err)
	c.Abort()
}
