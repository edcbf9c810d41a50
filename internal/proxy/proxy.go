package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go_redirect/internal/httpx"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Upstream forwards requests that were not redirected to the application behind this service
type Upstream struct {
	proxy  *httputil.ReverseProxy
	logger *logrus.Entry
}

// New creates an Upstream for rawURL
func New(rawURL string, logger *logrus.Entry) (*Upstream, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q: absolute http(s) url required", rawURL)
	}

	u := &Upstream{
		logger: logger.WithField("upstream", target.Host),
	}
	u.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.Host = pr.In.Host
		},
	}
	return u, nil
}

// Handler returns the gin handler used as the engine's NoRoute
func (u *Upstream) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := *u.proxy
		p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			u.logger.WithFields(logrus.Fields{
				"request_id": c.GetString(httpx.RequestIDKey),
				"path":       r.URL.Path,
			}).WithError(err).Warn("upstream request failed")
			httpx.FailErr(c, httpx.ErrExternalError("upstream unavailable", nil))
		}
		p.ServeHTTP(c.Writer, c.Request)
	}
}
