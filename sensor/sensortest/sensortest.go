// Package sensortest provides a scripted sensor for tests.
package sensortest

import (
	"context"
	"errors"
	"sync"

	"github.com/blesswinsamuel/dhtwatch/sensor"
)

// ErrRead is a stand-in for a failed one-wire frame.
var ErrRead = errors.New("sensortest: transient read error")

// Scripted replays Results in order. Once the script runs out the last
// Result is repeated forever.
type Scripted struct {
	mu     sync.Mutex
	script []sensor.Result
	reads  int
	closed bool
}

// New returns a sensor that replays results.
func New(results ...sensor.Result) *Scripted {
	return &Scripted{script: results}
}

// OK is a successful Result.
func OK(temperature, humidity float64) sensor.Result {
	return sensor.Result{Reading: sensor.Reading{Temperature: temperature, Humidity: humidity}}
}

// Fail is a transient failure.
func Fail() sensor.Result {
	return sensor.Result{Err: ErrRead}
}

func (s *Scripted) Read(ctx context.Context) sensor.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return sensor.Result{Err: err}
	}
	if len(s.script) == 0 {
		s.reads++
		return Fail()
	}
	i := s.reads
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.reads++
	return s.script[i]
}

func (s *Scripted) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Reads is how many times Read was called.
func (s *Scripted) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Closed reports whether Close was called.
func (s *Scripted) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
