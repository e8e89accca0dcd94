// Package poller drives periodic acquisition and display of sensor readings.
package poller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/log"

	"github.com/blesswinsamuel/dhtwatch/sensor"
)

// Poller reads one sensor on a fixed cadence and prints every accepted
// reading over the previous one.
type Poller struct {
	sensor  sensor.Sensor
	cfg     Config
	clock   Clock
	out     io.Writer
	metrics *Metrics
}

// Option customises a Poller.
type Option func(*Poller)

// WithClock replaces the clock used for sleeping.
func WithClock(c Clock) Option {
	return func(p *Poller) { p.clock = c }
}

// WithOutput replaces stdout as the console.
func WithOutput(w io.Writer) Option {
	return func(p *Poller) { p.out = w }
}

// WithMetrics records into m instead of an unexported registry.
func WithMetrics(m *Metrics) Option {
	return func(p *Poller) { p.metrics = m }
}

// New returns a Poller that owns s for as long as Run runs.
func New(s sensor.Sensor, cfg Config, opts ...Option) (*Poller, error) {
	if s == nil {
		return nil, fmt.Errorf("nil sensor")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	p := &Poller{
		sensor: s,
		cfg:    cfg,
		clock:  realClock{},
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		m, err := NewMetrics(prometheus.NewRegistry())
		if err != nil {
			return nil, err
		}
		p.metrics = m
	}
	return p, nil
}

// Run polls until ctx is cancelled and returns ctx.Err(). It has no other
// way to stop.
func (p *Poller) Run(ctx context.Context) error {
	for {
		p.Step(ctx)
		if err := p.clock.Sleep(ctx, p.cfg.Interval); err != nil {
			return err
		}
	}
}

// Step runs one outer iteration without the trailing sleep. It reports
// whether a line was printed.
func (p *Poller) Step(ctx context.Context) bool {
	res := p.sensor.Read(ctx)
	if !res.OK() {
		p.ignore(ctx, res.Err)
		return false
	}

	for rereads := 0; res.Reading.Temperature > p.cfg.Threshold; rereads++ {
		if rereads >= p.cfg.MaxRereads {
			p.metrics.discarded.Inc()
			log.Debugf("giving up on %.1f C after %d re-reads", res.Reading.Temperature, rereads)
			return false
		}
		if p.cfg.RereadDelay > 0 {
			if err := p.clock.Sleep(ctx, p.cfg.RereadDelay); err != nil {
				return false
			}
		}
		if ctx.Err() != nil {
			return false
		}
		p.metrics.rereads.Inc()
		res = p.sensor.Read(ctx)
		if !res.OK() {
			p.ignore(ctx, res.Err)
			return false
		}
	}

	p.metrics.observe(res.Reading.Temperature, res.Reading.Humidity)
	if _, err := io.WriteString(p.out, FormatLine(res.Reading)); err != nil {
		log.Errorf("failed to write reading: %v", err)
	}
	return true
}

// ignore is the loop's policy for failed reads: count them and move on to
// the next iteration. Nothing reaches the console.
func (p *Poller) ignore(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}
	p.metrics.failures.Inc()
	log.Debugf("ignoring failed read: %v", err)
}
