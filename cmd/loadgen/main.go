// Command loadgen drives GET traffic against the configured target with a fixed
// number of virtual users for a fixed duration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mirrorlab/internal/config"
	"mirrorlab/internal/infra/logging"
	"mirrorlab/internal/loadgen"
)

func main() {
	cfg := config.Load()
	logging.InitLogger(
		cfg.Logger.File,
		cfg.Logger.MaxSizeMB,
		cfg.Logger.MaxBackups,
		cfg.Logger.MaxAgeDays,
		cfg.Logger.Compress,
		cfg.Logger.Level,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, loadgen.FromConfig(cfg.LoadGen)); err != nil {
		logging.Error("Load run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts loadgen.Options) error {
	logging.Info("Starting load run",
		"url", opts.TargetURL,
		"vus", opts.VUs,
		"duration", opts.Duration,
		"sleep", opts.Sleep,
	)

	sum, err := loadgen.Run(ctx, opts, loadgen.NewClient(opts.Timeout))
	if err != nil {
		return err
	}

	logging.Info("Load run finished",
		"iterations", sum.Iterations,
		"failures", sum.Failures,
		"elapsed", sum.Elapsed,
	)
	return nil
}
