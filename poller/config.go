package poller

import (
	"errors"
	"time"
)

// Config controls the cadence and the re-read rule of the loop.
type Config struct {
	// Interval is the sleep between two outer iterations.
	Interval time.Duration
	// Threshold is the temperature above which a reading is re-taken
	// before it is printed.
	Threshold float64
	// MaxRereads bounds the re-reads of one iteration. When exhausted the
	// iteration prints nothing. Zero disables re-reading: hot readings are
	// discarded and the next iteration tries again.
	MaxRereads int
	// RereadDelay is slept before every re-read.
	RereadDelay time.Duration
}

// DefaultConfig polls once a second and re-reads anything above 36 C.
func DefaultConfig() Config {
	return Config{
		Interval:   time.Second,
		Threshold:  36,
		MaxRereads: 10,
	}
}

// Validate checks the config for values the loop cannot run with.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	if c.MaxRereads < 0 {
		return errors.New("max rereads must not be negative")
	}
	if c.RereadDelay < 0 {
		return errors.New("reread delay must not be negative")
	}
	return nil
}
