package loadgen

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"mirrorlab/internal/infra/logging"
)

// Summary is what a run reports once every virtual user has stopped.
type Summary struct {
	Iterations int64
	Failures   int64
	Elapsed    time.Duration
}

// Run drives opts.VUs independent loops against opts.TargetURL until
// opts.Duration elapses or ctx is cancelled. Failed requests are counted and
// logged; they never stop the run.
func Run(ctx context.Context, opts Options, g Getter) (Summary, error) {
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	var iterations, failures atomic.Int64
	start := time.Now()

	eg, egCtx := errgroup.WithContext(runCtx)
	for vu := 1; vu <= opts.VUs; vu++ {
		vu := vu // per-iteration copy (Go <1.22 loop semantics)
		eg.Go(func() error {
			for egCtx.Err() == nil {
				status, err := g.Get(opts.TargetURL)
				iterations.Add(1)
				if err == nil && status >= 400 {
					err = fmt.Errorf("unexpected status %d", status)
				}
				if err != nil {
					failures.Add(1)
					logging.Warn("Request failed", "vu", vu, "url", opts.TargetURL, "error", err)
				}
				if !sleep(egCtx, opts.Sleep) {
					return nil
				}
			}
			return nil
		})
	}
	// VU loops never return errors; Wait only joins them.
	_ = eg.Wait()

	return Summary{
		Iterations: iterations.Load(),
		Failures:   failures.Load(),
		Elapsed:    time.Since(start),
	}, nil
}

// sleep pauses for d, returning false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
