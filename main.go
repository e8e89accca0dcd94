package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	shell "github.com/d2r2/go-shell"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/log"
	"golang.org/x/sync/errgroup"

	"github.com/blesswinsamuel/dhtwatch/dht"
	"github.com/blesswinsamuel/dhtwatch/poller"
	"github.com/blesswinsamuel/dhtwatch/sensor"
)

var (
	driver = flag.String("driver", "periph",
		"sensor driver: periph or michaels11")
	pinName = flag.String("pin", "GPIO21",
		"GPIO pin the sensor data line is wired to")
	sensorName = flag.String("sensor", "dht11",
		"sensor model: dht11, dht12, dht22 or am2302")
	interval = flag.Duration("interval", time.Second,
		"sleep between two readings")
	rereadAbove = flag.Float64("reread-above", 36,
		"re-read readings above this temperature (C) before printing")
	maxRereads = flag.Int("max-rereads", 10,
		"re-reads of a reading above -reread-above before giving up on it")
	rereadDelay = flag.Duration("reread-delay", 0,
		"sleep before every re-read")
	listen = flag.String("listen", "",
		"listen address for metrics, empty to disable")
	metricsPath = flag.String("metrics_path",
		"/metrics",
		"path under which metrics are served")
	logLevel = flag.String("log.level", "info",
		"only log messages with the given severity or above: debug, info, warn, error, fatal")
)

func pollerConfig() poller.Config {
	return poller.Config{
		Interval:    *interval,
		Threshold:   *rereadAbove,
		MaxRereads:  *maxRereads,
		RereadDelay: *rereadDelay,
	}
}

func openSensor(driver, pin string, sensorType dht.SensorType) (sensor.Sensor, error) {
	switch driver {
	case "periph":
		if err := dht.HostInit(); err != nil {
			return nil, err
		}
		return sensor.NewPeriph(pin, sensorType)
	case "michaels11":
		return sensor.NewMichaelS11(pin, sensorType)
	}
	return nil, fmt.Errorf("unknown driver %q", driver)
}

func metricsHandler(reg *prometheus.Registry, path string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>
			<head><title>DHT Watch</title></head>
			<body>
			<h1>DHT Watch</h1>
			<p><a href="` + path + `">Metrics</a></p>
			</body></html>`))
	})
	return mux
}

func serveMetrics(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Infoln("Listening on", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	flag.Parse()
	if err := log.Base().SetLevel(*logLevel); err != nil {
		log.Fatal(err)
	}
	if *logLevel == "debug" {
		if err := dht.SetDebug(true); err != nil {
			log.Fatal(err)
		}
	}

	cfg := pollerConfig()
	if err := cfg.Validate(); err != nil {
		flag.Usage()
		log.Fatal(err)
	}
	sensorType, err := dht.ParseSensorType(*sensorName)
	if err != nil {
		log.Fatal(err)
	}

	s, err := openSensor(*driver, *pinName, sensorType)
	if err != nil {
		log.Fatal("open sensor: ", err)
	}
	defer s.Close()

	reg := prometheus.NewRegistry()
	metrics, err := poller.NewMetrics(reg)
	if err != nil {
		log.Fatal(err)
	}
	p, err := poller.New(s, cfg, poller.WithMetrics(metrics))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	defer close(done)
	signals := []os.Signal{os.Kill, os.Interrupt}
	if shell.IsLinuxMacOSFreeBSD() {
		signals = append(signals, syscall.SIGTERM)
	}
	shell.CloseContextOnSignals(cancel, done, signals...)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(ctx) })
	if *listen != "" {
		log.Infoln("Serving metrics under", *metricsPath)
		g.Go(func() error { return serveMetrics(ctx, *listen, metricsHandler(reg, *metricsPath)) })
	}
	err = g.Wait()
	// leave the last reading on screen
	fmt.Println()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error(err)
	}
}
