package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"mirrorlab/internal/config"
	"mirrorlab/internal/domain"
	"mirrorlab/internal/http/server"
	"mirrorlab/internal/infra/logging"
)

// Run starts an echo server for the given variant and blocks until it has shut
// down. server.variant in the config file takes precedence over def. A listen
// failure is returned to the caller.
func Run(def domain.Variant) error {
	cfg := config.Load()

	if err := ensureLogDir(cfg.Logger.File); err != nil {
		logging.Error("Failed to create log directory", "error", err)
	}
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	v, err := resolveVariant(cfg, def)
	if err != nil {
		logging.Error("Invalid server variant, using default", "error", err, "default", def.Name)
		v = def
	}

	app := server.New(server.Deps{Config: cfg, Variant: v})

	idleConnsClosed := make(chan struct{})
	logging.Info(v.Name+" running", "addr", cfg.Server.Host+cfg.Server.Port)
	err = startServer(app, cfg, idleConnsClosed)
	<-idleConnsClosed
	return err
}

func resolveVariant(cfg config.Config, def domain.Variant) (domain.Variant, error) {
	v := def
	if cfg.Server.Variant != "" {
		var err error
		if v, err = domain.Lookup(cfg.Server.Variant); err != nil {
			return domain.Variant{}, err
		}
	}
	if err := v.Validate(); err != nil {
		return domain.Variant{}, err
	}
	return v, nil
}

// startServer starts the Fiber app and listens for shutdown signals. It returns
// early with the listen error when the app stops serving on its own.
func startServer(app *fiber.App, cfg config.Config, idleConnsClosed chan struct{}) error {
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigint)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.Server.Host + cfg.Server.Port)
	}()

	select {
	case err := <-listenErr:
		close(idleConnsClosed)
		if err != nil {
			logging.Error("Server error", "error", err)
			return fmt.Errorf("listen on %s: %w", cfg.Server.Host+cfg.Server.Port, err)
		}
		return nil
	case <-sigint:
	}

	logging.Warn("Shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
	}

	close(idleConnsClosed)
	logging.Info("Server stopped cleanly")
	return nil
}

func ensureLogDir(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
