package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendalab/tienda-bff/internal/platform/metrics"
)

func TestObserveUpstream(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.ObserveUpstream("GET", "products", 200, 10*time.Millisecond)
	m.ObserveUpstream("GET", "products", 200, 20*time.Millisecond)
	m.ObserveUpstream("GET", "products", 0, time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "tienda_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per status label")

	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != "tienda_upstream_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(3), total)
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.New(reg)
	require.NoError(t, err)
	second, err := metrics.New(reg)
	require.NoError(t, err)

	first.ObserveHTTP("GET", "/api/products", 200, time.Millisecond)
	second.ObserveHTTP("GET", "/api/products", 200, time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "tienda_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveUpstream("GET", "users", 500, time.Second)
		m.ObserveHTTP("GET", "/health", 200, time.Second)
	})
}
