package sensor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpiotest"

	"github.com/blesswinsamuel/dhtwatch/dht"
)

func TestNewPeriphUnknownPin(t *testing.T) {
	_, err := NewPeriph("NO_SUCH_PIN_42", dht.DHT11)
	assert.Error(t, err)
}

func TestPeriphReadCancelled(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO21", Num: 21}
	p, err := NewPeriphPin(pin, dht.DHT11)
	require.NoError(t, err)
	assert.Equal(t, gpio.High, pin.Read())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res := p.Read(ctx)
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.NoError(t, p.Close())
}

func TestResultOK(t *testing.T) {
	assert.True(t, Result{Reading: Reading{Temperature: 21}}.OK())
	assert.False(t, Result{Err: context.Canceled}.OK())
}
