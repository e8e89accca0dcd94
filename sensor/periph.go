package sensor

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"

	"github.com/blesswinsamuel/dhtwatch/dht"
)

// Periph reads a DHT sensor through the in-repo periph driver.
type Periph struct {
	dht *dht.DHT
}

// NewPeriph binds a sensor to the named GPIO pin, e.g. "GPIO21".
// periph host drivers must already be initialised, see dht.HostInit.
func NewPeriph(pinName string, sensorType dht.SensorType) (*Periph, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("no such pin %q", pinName)
	}
	return NewPeriphPin(pin, sensorType)
}

// NewPeriphPin binds a sensor to an already resolved pin.
func NewPeriphPin(pin gpio.PinIO, sensorType dht.SensorType) (*Periph, error) {
	d, err := dht.NewDHT(pin, dht.Celsius, sensorType)
	if err != nil {
		return nil, fmt.Errorf("new dht on %s: %w", pin, err)
	}
	return &Periph{dht: d}, nil
}

// Read takes one sample.
func (p *Periph) Read(ctx context.Context) Result {
	humidity, temperature, err := p.dht.Read(ctx)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Reading: Reading{Temperature: temperature, Humidity: humidity, At: time.Now()}}
}

// ReadRetry takes one sample, retrying failed frames up to maxRetries times.
func (p *Periph) ReadRetry(ctx context.Context, maxRetries int) (Result, int) {
	humidity, temperature, retries, err := p.dht.ReadRetry(ctx, maxRetries)
	if err != nil {
		return Result{Err: err}, retries
	}
	return Result{Reading: Reading{Temperature: temperature, Humidity: humidity, At: time.Now()}}, retries
}

// Close releases the pin.
func (p *Periph) Close() error {
	return p.dht.Halt()
}
