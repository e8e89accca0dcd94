package poller

import (
	"fmt"
	"strconv"

	"github.com/blesswinsamuel/dhtwatch/sensor"
)

// FormatLine renders a reading as a console line that the next line
// overwrites: it ends in a carriage return and carries trailing spaces to
// blank out a longer previous line.
func FormatLine(r sensor.Reading) string {
	return fmt.Sprintf("Temp: %.1f C  Humidity: %s%%    \r",
		r.Temperature, strconv.FormatFloat(r.Humidity, 'f', -1, 64))
}
