// Command maintest reads the sensor once and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/common/log"

	"github.com/blesswinsamuel/dhtwatch/dht"
	"github.com/blesswinsamuel/dhtwatch/sensor"
)

var (
	pinName    = flag.String("pin", "GPIO21", "GPIO pin the sensor data line is wired to")
	sensorName = flag.String("sensor", "dht11", "sensor model: dht11, dht12, dht22 or am2302")
	retries    = flag.Int("retries", 11, "reads to attempt before giving up")
	timeout    = flag.Duration("timeout", time.Minute, "give up after this long")
)

func main() {
	flag.Parse()
	sensorType, err := dht.ParseSensorType(*sensorName)
	if err != nil {
		log.Fatal(err)
	}
	if err := dht.HostInit(); err != nil {
		log.Fatal(err)
	}
	s, err := sensor.NewPeriph(*pinName, sensorType)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	res, retried := s.ReadRetry(ctx, *retries)
	if !res.OK() {
		fmt.Println("Read error:", res.Err)
		s.Close()
		os.Exit(1)
	}
	fmt.Printf("Temperature = %.1f*C, Humidity = %v%% (retried %d times)\n",
		res.Reading.Temperature, res.Reading.Humidity, retried)
}
