package loadgen

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"mirrorlab/internal/config"
)

var ErrInvalidOptions = errors.New("invalid load options")

// Options describes one run: VUs loops, each doing GET TargetURL then sleeping,
// until Duration has passed.
type Options struct {
	TargetURL string
	VUs       int
	Duration  time.Duration
	Sleep     time.Duration
	Timeout   time.Duration
}

func DefaultOptions() Options {
	return FromConfig(config.Default().LoadGen)
}

func FromConfig(c config.LoadGenConfig) Options {
	return Options{
		TargetURL: c.TargetURL,
		VUs:       c.VUs,
		Duration:  c.Duration,
		Sleep:     c.Sleep,
		Timeout:   c.Timeout,
	}
}

func (o Options) Validate() error {
	switch {
	case o.VUs <= 0:
		return fmt.Errorf("%w: vus must be positive", ErrInvalidOptions)
	case o.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidOptions)
	case o.Sleep < 0:
		return fmt.Errorf("%w: sleep must not be negative", ErrInvalidOptions)
	case o.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidOptions)
	}
	u, err := url.Parse(o.TargetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: target url %q", ErrInvalidOptions, o.TargetURL)
	}
	return nil
}
