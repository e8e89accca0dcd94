package poller

import "github.com/prometheus/client_golang/prometheus"

// Metrics mirrors what the loop sees. The loop works the same whether or
// not anything scrapes them.
type Metrics struct {
	temperature prometheus.Gauge
	humidity    prometheus.Gauge
	readings    prometheus.Counter
	failures    prometheus.Counter
	rereads     prometheus.Counter
	discarded   prometheus.Counter
}

// NewMetrics creates the loop metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pi_dht_temperature",
			Help: "Temperature from DHT sensor",
		}),
		humidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pi_dht_humidity",
			Help: "Humidity from DHT sensor",
		}),
		readings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pi_dht_readings",
			Help: "Successful readings from DHT sensor",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pi_dht_failed",
			Help: "Failures from DHT sensor",
		}),
		rereads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pi_dht_retries",
			Help: "Re-reads of readings above the threshold",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pi_dht_discarded",
			Help: "Iterations that gave up re-reading a reading above the threshold",
		}),
	}
	for _, c := range []prometheus.Collector{m.temperature, m.humidity, m.readings, m.failures, m.rereads, m.discarded} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(temperature, humidity float64) {
	m.readings.Inc()
	m.temperature.Set(temperature)
	m.humidity.Set(humidity)
}
