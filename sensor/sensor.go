// Package sensor defines the owned handle the polling loop reads through.
package sensor

import (
	"context"
	"time"
)

// Reading is one temperature/humidity sample. It is only valid for the
// instant it was taken.
type Reading struct {
	Temperature float64 // degrees Celsius
	Humidity    float64 // percent relative humidity
	At          time.Time
}

// Result is the outcome of one read: either a Reading or a transient failure.
type Result struct {
	Reading Reading
	Err     error
}

// OK reports whether the read produced a reading.
func (r Result) OK() bool {
	return r.Err == nil
}

// Sensor is a handle bound to one physical sensor. The owner closes it.
type Sensor interface {
	Read(ctx context.Context) Result
	Close() error
}
