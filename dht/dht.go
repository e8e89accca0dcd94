// Package dht reads DHT11, DHT12 and DHT22 sensors by bit-banging a periph GPIO pin.
package dht

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gavv/monotime"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/host"
)

// TemperatureUnit is the temperature unit wanted, either Celsius or Fahrenheit
type TemperatureUnit int

const (
	// Celsius temperature unit
	Celsius TemperatureUnit = iota
	// Fahrenheit temperature unit
	Fahrenheit
)

// MinReadInterval is how long the sensor needs between two frames.
const MinReadInterval = 2 * time.Second

// DHT struct to interface with the sensor.
// Call NewDHT to create a new one.
type DHT struct {
	pin             gpio.PinIO
	temperatureUnit TemperatureUnit
	sensorType      SensorType
	minInterval     time.Duration
	lastRead        time.Time
}

// NewDHT to create a new DHT struct.
func NewDHT(pin gpio.PinIO, temperatureUnit TemperatureUnit, sensorType SensorType) (*DHT, error) {
	if pin == nil {
		return nil, fmt.Errorf("nil pin")
	}
	dht := &DHT{
		pin:             pin,
		temperatureUnit: temperatureUnit,
		sensorType:      sensorType,
		minInterval:     MinReadInterval,
		// give the pin a second to warm up
		lastRead: time.Now().Add(-1 * time.Second),
	}

	// set pin to high so ready for first read
	if err := dht.pin.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("pin out high error: %w", err)
	}
	return dht, nil
}

// SensorType returns the sensor model this DHT decodes frames for.
func (dht *DHT) SensorType() SensorType {
	return dht.sensorType
}

// Halt releases the pin.
func (dht *DHT) Halt() error {
	return dht.pin.Halt()
}

const maxCycles = 16000
const timeout = time.Minute

func (dht *DHT) waitLevel(wantLevel gpio.Level) time.Duration {
	startTime := monotime.Now()
	for loopCnt := 0; loopCnt < maxCycles; loopCnt++ {
		if dht.pin.Read() == wantLevel {
			return monotime.Now() - startTime
		}
	}
	return timeout
}

// readCycles sends the start signal and records the 80 pulse durations of one frame.
func (dht *DHT) readCycles() (cycles []time.Duration, err error) {
	defer func() {
		// release the bus, set pin to high so ready for next time
		if err := dht.pin.Out(gpio.High); err != nil {
			lg.Errorf("pin out high error: %v", err)
		}
	}()

	// create variables ahead of time before critical timing part
	var initCycles [4]time.Duration
	cycles = make([]time.Duration, 2*frameBits)

	// disable garbage collection during critical timing part
	gcPercent := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(gcPercent)

	// send start signal
	if err = dht.pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("pin out low error: %w", err)
	}
	time.Sleep(dht.sensorType.HandshakeDuration())
	if err = dht.pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("pin in error: %w", err)
	}

	// sensor response: low 80us, high 80us, then the frame
	initCycles[0] = dht.waitLevel(gpio.Low)
	if initCycles[0] == timeout {
		return nil, fmt.Errorf("%w: no response", ErrTimeout)
	}
	initCycles[1] = dht.waitLevel(gpio.High)
	initCycles[2] = dht.waitLevel(gpio.Low)
	for i := 0; i < 2*frameBits; i += 2 {
		cycles[i] = dht.waitLevel(gpio.High)  // 50us
		cycles[i+1] = dht.waitLevel(gpio.Low) // 26-28us or 70us
	}
	initCycles[3] = dht.waitLevel(gpio.High)

	lg.Debugf("init cycles: %v", initCycles)
	lg.Debugf("cycles: %v", cycles)
	return cycles, nil
}

// wait blocks until minInterval has passed since the last frame.
func (dht *DHT) wait(ctx context.Context) error {
	sleepTime := dht.minInterval - time.Since(dht.lastRead)
	if sleepTime <= 0 {
		return nil
	}
	timer := time.NewTimer(sleepTime)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Read reads the sensor once, returing humidity and temperature, or an error.
// Note that Read will sleep until at least MinReadInterval has passed since
// the last call.
func (dht *DHT) Read(ctx context.Context) (humidity float64, temperature float64, err error) {
	if err = dht.wait(ctx); err != nil {
		return
	}
	dht.lastRead = time.Now()

	cycles, err := dht.readCycles()
	if err != nil {
		return
	}
	data, err := decodeCycles(cycles)
	if err != nil {
		return
	}
	humidity, temperature, err = bytesToValues(dht.sensorType, data)
	if err != nil {
		return
	}
	if dht.temperatureUnit == Fahrenheit {
		temperature = temperature*9.0/5.0 + 32.0
	}
	return
}

// ReadRetry will call Read until there is no errors or the maxRetries is hit.
// Suggest maxRetries to be set around 11.
func (dht *DHT) ReadRetry(ctx context.Context, maxRetries int) (humidity float64, temperature float64, retries int, err error) {
	if maxRetries < 1 {
		maxRetries = 1
	}
	for i := 0; i < maxRetries; i++ {
		retries = i
		humidity, temperature, err = dht.Read(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}
		lg.Warningf("Error: %v", err)
	}
	return
}

// HostInit calls periph.io host.Init(). This needs to be done before DHT can be used.
func HostInit() error {
	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("host init: %w", err)
	}
	for _, driver := range state.Loaded {
		lg.Debugf("loaded driver %s", driver)
	}
	for _, failure := range state.Skipped {
		lg.Debugf("skipped driver %s: %s", failure.D, failure.Err)
	}
	// failing drivers do not require process termination
	for _, failure := range state.Failed {
		lg.Warningf("driver %s failed to load: %v", failure.D, failure.Err)
	}
	return nil
}
