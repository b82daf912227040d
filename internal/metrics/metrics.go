// Package metrics exposes prometheus counters for the dashboard core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	mutations *prometheus.CounterVec
	searches  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventpage",
		Name:      "http_requests_total",
		Help:      "Requests served by the local API, by route and status class.",
	}, []string{"route", "status"})
	m.mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventpage",
		Name:      "event_mutations_total",
		Help:      "Create/update/delete attempts against the gateway, by outcome.",
	}, []string{"kind", "outcome"})
	m.searches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "eventpage",
		Name:      "searches_total",
		Help:      "Search and filter state changes.",
	})
	m.registry.MustRegister(m.requests, m.mutations, m.searches)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, status string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, status).Inc()
}

func (m *Metrics) ObserveMutation(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.mutations.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveSearch() {
	if m == nil {
		return
	}
	m.searches.Inc()
}
