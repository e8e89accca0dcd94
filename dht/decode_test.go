package dht

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameCycles encodes bytes the way the sensor does: a ~50us low pulse
// followed by a 27us (0) or 70us (1) high pulse per bit.
func frameCycles(data [5]byte) []time.Duration {
	cycles := make([]time.Duration, 0, 2*frameBits)
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			cycles = append(cycles, 50*time.Microsecond)
			if b&(1<<uint(bit)) != 0 {
				cycles = append(cycles, 70*time.Microsecond)
			} else {
				cycles = append(cycles, 27*time.Microsecond)
			}
		}
	}
	return cycles
}

func TestDecodeCycles(t *testing.T) {
	want := [5]byte{45, 0, 23, 4, 72}
	got, err := decodeCycles(frameCycles(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeCyclesTimeout(t *testing.T) {
	cycles := frameCycles([5]byte{45, 0, 23, 4, 72})
	cycles[17] = timeout
	_, err := decodeCycles(cycles)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.True(t, IsTransient(err))

	_, err = decodeCycles(cycles[:10])
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestBytesToValues(t *testing.T) {
	tests := []struct {
		name        string
		sensorType  SensorType
		data        [5]byte
		humidity    float64
		temperature float64
	}{
		{"dht11", DHT11, [5]byte{45, 0, 23, 4, 72}, 45, 23.4},
		{"dht11 integral", DHT11, [5]byte{60, 0, 36, 0, 96}, 60, 36},
		{"dht12 negative", DHT12, [5]byte{55, 2, 3, 0x85, 0xC1}, 55.2, -3.5},
		// 0x0292 = 658 -> 65.8 %, 0x010F = 271 -> 27.1 C
		{"dht22", DHT22, [5]byte{0x02, 0x92, 0x01, 0x0F, 0xA4}, 65.8, 27.1},
		// 0x8065 -> -10.1 C
		{"dht22 negative", DHT22, [5]byte{0x02, 0x92, 0x80, 0x65, 0x79}, 65.8, -10.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, temp, err := bytesToValues(tt.sensorType, tt.data)
			require.NoError(t, err)
			assert.InDelta(t, tt.humidity, h, 1e-9)
			assert.InDelta(t, tt.temperature, temp, 1e-9)
		})
	}
}

func TestBytesToValuesChecksum(t *testing.T) {
	_, _, err := bytesToValues(DHT11, [5]byte{45, 0, 23, 4, 71})
	assert.ErrorIs(t, err, ErrChecksum)
	assert.True(t, IsTransient(err))
}

func TestBytesToValuesChecksumWraps(t *testing.T) {
	// 200+0+100+0 = 300, low byte 44
	_, _, err := bytesToValues(DHT11, [5]byte{200, 0, 100, 0, 44})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestBytesToValuesOutOfRange(t *testing.T) {
	_, _, err := bytesToValues(DHT11, [5]byte{40, 0, 60, 0, 100})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, _, err = bytesToValues(DHT11, [5]byte{101, 0, 20, 0, 121})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestParseSensorType(t *testing.T) {
	for in, want := range map[string]SensorType{
		"dht11":  DHT11,
		"DHT12":  DHT12,
		"dht22":  DHT22,
		"AM2302": DHT22,
	} {
		got, err := ParseSensorType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSensorType("bme280")
	assert.Error(t, err)
}
