// Package metrics owns the Prometheus collectors exported by the gateway.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatusTransportError labels upstream calls that never produced a response.
const StatusTransportError = "error"

// Metrics groups the gateway's inbound and outbound request collectors.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. Collectors that are
// already registered (e.g. a second server in the same test binary) are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.upstreamRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tienda_upstream_requests_total",
		Help: "Requests issued to the upstream store API",
	}, []string{"method", "resource", "status"}))
	if err != nil {
		return nil, err
	}

	m.upstreamDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tienda_upstream_request_duration_seconds",
		Help:    "Latency of requests issued to the upstream store API",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource"}))
	if err != nil {
		return nil, err
	}

	m.httpRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tienda_http_requests_total",
		Help: "Requests served by the gateway",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	m.httpDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tienda_http_request_duration_seconds",
		Help:    "Latency of requests served by the gateway",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"}))
	if err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("failed to register metric: %w", err)
	}
	return c, nil
}

// ObserveUpstream records one upstream call. status is the HTTP status code,
// or 0 when the call failed before a response arrived.
func (m *Metrics) ObserveUpstream(method, resource string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := StatusTransportError
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(method, resource, label).Inc()
	m.upstreamDuration.WithLabelValues(method, resource).Observe(d.Seconds())
}

// ObserveHTTP records one request served by the gateway.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
