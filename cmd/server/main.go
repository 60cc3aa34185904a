package main

import (
	"context"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/cartloom/cartloom/internal/app"
	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret is weak or still the default, configure a strong random key for production")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("warning: JWT secret is weak or still the default, replace it before going to production")
	}

	store, err := models.NewStore(context.Background(), models.StoreOptions{
		URI:            cfg.Database.URI,
		Name:           cfg.Database.Name,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
	})
	if err != nil {
		stdLog.Fatalf("database connection failed: %v", err)
	}

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = store.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		stdLog.Fatalf("database index setup failed: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	runErr := app.Run(app.Options{
		Config:  cfg,
		Store:   store,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	})

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.Close(closeCtx); err != nil {
		logger.Errorw("store_close_failed", "error", err)
	}
	cancel()

	if runErr != nil {
		stdLog.Fatalf("server exited with error: %v", runErr)
	}
	logger.Infow("app_stopped")
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
