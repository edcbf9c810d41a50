package middleware

import (
	"context"
	"net/http"
	"strings"

	"go_redirect/internal/httpx"
	"go_redirect/internal/redirect"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Resolver decides whether a request URL is redirected
type Resolver interface {
	HandleRequest(ctx context.Context, requestURL string) (redirect.Decision, error)
}

// Redirect runs before every route. A matching rule ends the request with a
// redirect; a store failure ends it with a 500 instead of passing through.
func Redirect(resolver Resolver, trustForwarded bool, logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestURL := AbsoluteURL(c.Request, trustForwarded)

		decision, err := resolver.HandleRequest(c.Request.Context(), requestURL)
		if err != nil {
			httpx.AbortErr(c, httpx.ErrDatabaseError("redirect lookup failed", err))
			return
		}
		if !decision.Redirect {
			c.Next()
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(httpx.RequestIDKey),
			"source":     requestURL,
			"target":     decision.Target,
			"status":     decision.StatusCode,
		}).Debug("redirecting")

		c.Redirect(decision.StatusCode, decision.Target)
		c.Abort()
	}
}

// AbsoluteURL rebuilds scheme://host/path?query for r.
// With trustForwarded, X-Forwarded-Proto and X-Forwarded-Host take precedence.
func AbsoluteURL(r *http.Request, trustForwarded bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if trustForwarded {
		if proto := firstHeaderValue(r, "X-Forwarded-Proto"); proto != "" {
			scheme = strings.ToLower(proto)
		}
		if fwdHost := firstHeaderValue(r, "X-Forwarded-Host"); fwdHost != "" {
			host = fwdHost
		}
	}

	return scheme + "://" + host + r.URL.RequestURI()
}

func firstHeaderValue(r *http.Request, key string) string {
	v := r.Header.Get(key)
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
