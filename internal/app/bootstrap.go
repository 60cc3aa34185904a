package app

import (
	"errors"

	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/provider"
	"github.com/cartloom/cartloom/internal/router"
)

// BuildRunner wires the container and the HTTP service on top of the given
// store.
func BuildRunner(cfg *config.Config, store *models.Store) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}

	container := provider.NewContainer(cfg, store)
	engine := router.SetupRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	httpService := NewHTTPService(addr, engine)

	return NewRunner(httpService), nil
}

// Run is the application entry point.
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Store)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr)
	return RunWithOptions(runner, opts)
}
