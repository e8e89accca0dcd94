package main

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blesswinsamuel/dhtwatch/dht"
	"github.com/blesswinsamuel/dhtwatch/poller"
)

func TestOpenSensorUnknownDriver(t *testing.T) {
	_, err := openSensor("embd", "GPIO21", dht.DHT11)
	assert.Error(t, err)
}

func TestPollerConfigDefaults(t *testing.T) {
	assert.Equal(t, poller.DefaultConfig(), pollerConfig())
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := poller.NewMetrics(reg)
	require.NoError(t, err)
	srv := httptest.NewServer(metricsHandler(reg, "/metrics"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "pi_dht_temperature")

	resp2, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp2.Body.Close()
	body, err = ioutil.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `href="/metrics"`)
}
