package sensor

import (
	"context"
	"fmt"
	"time"

	michaels11 "github.com/MichaelS11/go-dht"

	"github.com/blesswinsamuel/dhtwatch/dht"
)

// MichaelS11 reads a DHT sensor through github.com/MichaelS11/go-dht.
// That driver only knows DHT11 and DHT22 and does not take a context, so a
// cancelled context is only noticed between reads.
type MichaelS11 struct {
	dht *michaels11.DHT
}

// NewMichaelS11 binds a sensor to the named GPIO pin. It initialises the
// periph host drivers itself.
func NewMichaelS11(pinName string, sensorType dht.SensorType) (*MichaelS11, error) {
	if err := michaels11.HostInit(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	name := "dht22"
	switch sensorType {
	case dht.DHT11:
		name = "dht11"
	case dht.DHT22:
	default:
		return nil, fmt.Errorf("sensor %v not supported by this driver", sensorType)
	}
	d, err := michaels11.NewDHT(pinName, michaels11.Celsius, name)
	if err != nil {
		return nil, fmt.Errorf("new dht on %s: %w", pinName, err)
	}
	return &MichaelS11{dht: d}, nil
}

// Read takes one sample.
func (m *MichaelS11) Read(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	humidity, temperature, err := m.dht.Read()
	if err != nil {
		return Result{Err: err}
	}
	return Result{Reading: Reading{Temperature: temperature, Humidity: humidity, At: time.Now()}}
}

// Close is a no-op, the driver keeps no resources of its own.
func (m *MichaelS11) Close() error {
	return nil
}
