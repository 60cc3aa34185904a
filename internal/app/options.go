package app

import (
	"os"
	"time"

	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/models"

	"go.uber.org/zap"
)

// Options are the application start options.
type Options struct {
	Config          *config.Config
	Store           *models.Store
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	return opts
}
