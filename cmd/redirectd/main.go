package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "go_redirect/api/v1"
	"go_redirect/internal/auth"
	"go_redirect/internal/bootstrap"
	"go_redirect/internal/config"
	"go_redirect/internal/proxy"
	"go_redirect/internal/redirect"
	"go_redirect/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration
	cfg, err := loadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger, err := util.SetupLogger(cfg.Log.Level, cfg.Log.Format, "redirectd")
	if err != nil {
		logrus.Fatalf("Failed to set up logger: %v", err)
	}
	logger.Info("✓ Configuration loaded")

	auth.InitJWT(cfg.JWT.Secret)

	// 2. Open the rule store
	ruleStore, closeStore, err := bootstrap.OpenStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to open redirect store: %v", err)
	}
	defer closeStore()

	// 3. Build resolver and manager
	resolver, err := redirect.NewResolver(ruleStore,
		redirect.WithStatusCode(cfg.Redirect.StatusCode),
		redirect.WithIgnoreQueryPart(cfg.Redirect.IgnoreQueryPart),
	)
	if err != nil {
		logger.Fatalf("Failed to create resolver: %v", err)
	}
	manager, err := redirect.NewManager(ruleStore)
	if err != nil {
		logger.Fatalf("Failed to create manager: %v", err)
	}

	var fallback gin.HandlerFunc
	if cfg.UpstreamURL != "" {
		upstream, err := proxy.New(cfg.UpstreamURL, logger)
		if err != nil {
			logger.Fatalf("Failed to configure upstream: %v", err)
		}
		fallback = upstream.Handler()
	}

	// 4. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	v1.SetupRouter(r, v1.Deps{
		Resolver:       resolver,
		Manager:        manager,
		TrustForwarded: cfg.Redirect.TrustForwarded,
		Fallback:       fallback,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":        cfg.HTTPAddr,
			"store":       cfg.Redirect.Store,
			"table":       cfg.Redirect.Table,
			"status_code": cfg.Redirect.StatusCode,
		}).Info("✓ Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
}

// loadConfig reads REDIRECT_CONFIG as an INI file when set, otherwise the environment
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("REDIRECT_CONFIG"); path != "" {
		return config.LoadFromINI(path)
	}
	return config.Load()
}
