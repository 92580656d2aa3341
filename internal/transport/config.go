package transport

import "github.com/pkg/errors"

// Config bounds a Pipe's queue and the messages it accepts.
type Config struct {
	QueueDepth     int
	MaxParts       int
	MaxFrameBytes  int
	ReleaseWorkers int
	ReleaseQueue   int
}

// DefaultConfig returns the limits used when no config file is given.
func DefaultConfig() Config {
	return Config{
		QueueDepth:     64,
		MaxParts:       1024,
		MaxFrameBytes:  8 << 20,
		ReleaseWorkers: 2,
		ReleaseQueue:   256,
	}
}

// Validate rejects non-positive limits.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"queue_depth", c.QueueDepth},
		{"max_parts", c.MaxParts},
		{"max_frame_bytes", c.MaxFrameBytes},
		{"release_workers", c.ReleaseWorkers},
		{"release_queue", c.ReleaseQueue},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s must be positive, got %d", check.name, check.value)
		}
	}
	return nil
}
