package v1

import (
	"go_redirect/api/v1/middleware"
	"go_redirect/api/v1/redirects"
	"go_redirect/internal/httpx"
	"go_redirect/internal/redirect"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps are the components the router wires into routes
type Deps struct {
	Resolver       *redirect.Resolver
	Manager        *redirect.Manager
	TrustForwarded bool
	// Fallback handles requests that were neither redirected nor routed; nil means 404
	Fallback gin.HandlerFunc
	Logger   *logrus.Entry
}

// SetupRouter installs the redirect hook in front of every route, then the API v1 routes
func SetupRouter(r *gin.Engine, deps Deps) {
	// Path fixups would answer before any middleware and bypass the redirect hook
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.Recovery(deps.Logger.WithField("component", "recovery")))
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(deps.Logger.WithField("component", "access")))
	r.Use(middleware.Redirect(deps.Resolver, deps.TrustForwarded, deps.Logger.WithField("component", "redirect")))

	v1 := r.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.GET("/ping", pingHandler)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			redirectsHandler := redirects.NewHandler(deps.Manager, deps.Logger.WithField("component", "redirect-admin"))
			redirectsGroup := protected.Group("/redirects")
			{
				redirectsGroup.POST("/create", redirectsHandler.Create)
				redirectsGroup.GET("/exists", redirectsHandler.Exists)
				redirectsGroup.GET("/loops", redirectsHandler.Loops)
			}
		}
	}

	if deps.Fallback != nil {
		r.NoRoute(deps.Fallback)
	} else {
		r.NoRoute(notFoundHandler)
	}
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}

func notFoundHandler(c *gin.Context) {
	httpx.FailErr(c, httpx.ErrNotFound("no route for "+c.Request.URL.Path))
}
