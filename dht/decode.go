package dht

import (
	"errors"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
)

var (
	// ErrTimeout is returned when the sensor stopped answering mid-frame.
	ErrTimeout = errors.New("dht: timeout waiting for sensor")
	// ErrChecksum is returned when the fifth byte does not match the data bytes.
	ErrChecksum = errors.New("dht: bad data - check sum fail")
	// ErrOutOfRange is returned for values the sensor cannot physically report.
	ErrOutOfRange = errors.New("dht: bad data - value out of range")
)

// IsTransient reports whether err is one of the read failures that are
// expected to clear up on a later read.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrChecksum) || errors.Is(err, ErrOutOfRange)
}

// frameBits is the number of data bits in one DHT frame: 4 data bytes plus checksum.
const frameBits = 40

// decodeCycles turns the 80 low/high pulse durations of a frame into its 5 bytes.
// A bit is 1 when its high pulse lasted longer than the low pulse before it.
func decodeCycles(cycles []time.Duration) ([5]byte, error) {
	var data [5]byte
	if len(cycles) != 2*frameBits {
		return data, fmt.Errorf("%w: got %d pulses, want %d", ErrTimeout, len(cycles), 2*frameBits)
	}
	for i := 0; i < frameBits; i++ {
		lowDur := cycles[2*i]
		highDur := cycles[2*i+1]

		if lowDur == timeout || highDur == timeout {
			return data, fmt.Errorf("%w: bit %d", ErrTimeout, i)
		}
		if lowDur < 40*time.Microsecond || lowDur > 60*time.Microsecond {
			lg.Debugf("%2d: low duration is not around 50us (%s)", i, lowDur)
		}

		data[i/8] <<= 1
		if highDur > lowDur {
			data[i/8] |= 1
		}
	}
	return data, nil
}

// bytesToValues validates the checksum and converts a frame into humidity and
// temperature in Celsius.
func bytesToValues(sensorType SensorType, data [5]byte) (humidity float64, temperature float64, err error) {
	b0, b1, b2, b3, sum := data[0], data[1], data[2], data[3], data[4]
	calcSum := b0 + b1 + b2 + b3
	if sum != calcSum {
		return 0, 0, fmt.Errorf("%w: %s", ErrChecksum, spew.Sprintf(
			"checksum from sensor(%v) != calculated checksum(%v=%v+%v+%v+%v)",
			sum, calcSum, b0, b1, b2, b3))
	}
	lg.Debugf("Decoded from %v sensor: [%d, %d, %d, %d, %d]", sensorType, b0, b1, b2, b3, sum)

	switch sensorType {
	case DHT12:
		humidity = float64(b0) + float64(b1)/10.0
		temperature = float64(b2) + float64(b3&0x7F)/10.0
		if b3&0x80 != 0 {
			temperature *= -1.0
		}
	case DHT22:
		humidity = (float64(b0)*256 + float64(b1)) / 10.0
		temperature = (float64(b2&0x7F)*256 + float64(b3)) / 10.0
		if b2&0x80 != 0 {
			temperature *= -1.0
		}
	default:
		humidity = float64(b0)
		temperature = float64(b2) + float64(b3)/10.0
	}

	// humidity is between 0 % to 100 %
	if humidity < 0 || humidity > 100 {
		return 0, 0, fmt.Errorf("%w: humidity %v", ErrOutOfRange, humidity)
	}
	// DHT11 measures temperature between 0 C to 50 C
	if sensorType == DHT11 && (temperature < 0 || temperature > 50) {
		return 0, 0, fmt.Errorf("%w: temperature %v", ErrOutOfRange, temperature)
	}
	return humidity, temperature, nil
}
