package redirects

import (
	"context"
	"errors"

	"go_redirect/internal/httpx"
	"go_redirect/internal/redirect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Manager is the rule management surface used by the handlers
type Manager interface {
	AddRule(ctx context.Context, source, target string) error
	HasURL(ctx context.Context, url string, column redirect.Column) (bool, error)
	FindLoopURLs(ctx context.Context) ([]string, error)
}

// Handler serves the redirect administration API
type Handler struct {
	manager Manager
	logger  *logrus.Entry
}

// NewHandler creates handler instance
func NewHandler(manager Manager, logger *logrus.Entry) *Handler {
	return &Handler{manager: manager, logger: logger}
}

// CreateRequest is the body of a create call
type CreateRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

// Create adds a redirect rule
// POST /api/v1/redirects/create
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, bindError(err))
		return
	}

	ctx := c.Request.Context()
	err := h.manager.AddRule(ctx, req.Source, req.Target)
	if err != nil {
		httpx.FailErr(c, h.addRuleError(ctx, req, err))
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": c.GetString(httpx.RequestIDKey),
		"subject":    c.GetString("subject"),
		"source":     req.Source,
		"target":     req.Target,
	}).Info("redirect added")

	httpx.OK(c, gin.H{"item": gin.H{
		"source": req.Source,
		"target": req.Target,
	}})
}

// bindError separates missing fields from malformed bodies
func bindError(err error) *httpx.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return httpx.ErrParamMissing("source and target are required")
			}
		}
	}
	return httpx.ErrParamInvalid("invalid request body: " + err.Error())
}

// addRuleError maps AddRule failures to API errors. A failed insert is reported
// as a conflict when the source turns out to be taken.
func (h *Handler) addRuleError(ctx context.Context, req CreateRequest, err error) *httpx.AppError {
	switch {
	case errors.Is(err, redirect.ErrInvalidURL):
		return httpx.ErrParamInvalid(err.Error())
	case errors.Is(err, redirect.ErrLoopPrevented):
		return httpx.ErrRedirectLoop(err.Error()).WithData(gin.H{"target": req.Target})
	case errors.Is(err, redirect.ErrStoreWrite):
		if taken, hasErr := h.manager.HasURL(ctx, req.Source, redirect.ColumnSource); hasErr == nil && taken {
			return httpx.ErrAlreadyExists("redirect source already exists").WithData(gin.H{"source": req.Source})
		}
		return httpx.ErrDatabaseError("failed to save redirect", err)
	default:
		return httpx.ErrDatabaseError("failed to check redirect", err)
	}
}

// Exists reports whether a url is present in the source or target column
// GET /api/v1/redirects/exists?url=...&column=source|target
func (h *Handler) Exists(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		httpx.FailErr(c, httpx.ErrParamMissing("parameter 'url' is required"))
		return
	}

	column, err := redirect.ParseColumn(c.DefaultQuery("column", string(redirect.ColumnSource)))
	if err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid(err.Error()))
		return
	}

	ok, err := h.manager.HasURL(c.Request.Context(), url, column)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to check redirect", err))
		return
	}

	httpx.OK(c, gin.H{
		"url":    url,
		"column": column,
		"exists": ok,
	})
}

// Loops lists targets that are also used as sources
// GET /api/v1/redirects/loops
func (h *Handler) Loops(c *gin.Context) {
	urls, err := h.manager.FindLoopURLs(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to scan redirects", err))
		return
	}
	httpx.OKItems(c, urls, int64(len(urls)))
}
