package dht

import (
	"fmt"
	"strings"
	"time"
)

// SensorType signify what sensor in use.
type SensorType int

const (
	// DHT11 is most popular sensor
	DHT11 SensorType = iota + 1
	// DHT12 is more precise than DHT11 (has scale parts)
	DHT12
	// DHT22 is more expensive and precise than DHT11
	DHT22
	// AM2302 aka DHT22
	AM2302 = DHT22
)

// String implement Stringer interface.
func (v SensorType) String() string {
	switch v {
	case DHT11:
		return "DHT11"
	case DHT12:
		return "DHT12"
	case DHT22:
		return "DHT22|AM2302"
	default:
		return "!!! unknown !!!"
	}
}

// HandshakeDuration specify how long the data line is held low
// to initiate sensor response.
func (v SensorType) HandshakeDuration() time.Duration {
	if v == DHT12 {
		return 200 * time.Millisecond
	}
	return 18 * time.Millisecond
}

// RetryTimeout return recommended timeout necessary
// to wait before new round of data exchange.
func (v SensorType) RetryTimeout() time.Duration {
	return 1500 * time.Millisecond
}

// ParseSensorType maps names like "dht11" or "am2302" to a SensorType.
func ParseSensorType(s string) (SensorType, error) {
	switch strings.ToLower(s) {
	case "dht11":
		return DHT11, nil
	case "dht12":
		return DHT12, nil
	case "dht22", "am2302":
		return DHT22, nil
	}
	return 0, fmt.Errorf("unknown sensor type %q", s)
}
