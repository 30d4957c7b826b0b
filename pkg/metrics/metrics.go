// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector behind a private registry.
type Metrics struct {
	registry *prometheus.Registry
	HTTP     *HTTPMetrics
	Taxonomy *TaxonomyMetrics
	Auth     *AuthMetrics
}

func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}

	httpMetrics, err := NewHTTPMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	taxonomyMetrics, err := NewTaxonomyMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create taxonomy metrics: %w", err)
	}

	authMetrics, err := NewAuthMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth metrics: %w", err)
	}

	return &Metrics{
		registry: registry,
		HTTP:     httpMetrics,
		Taxonomy: taxonomyMetrics,
		Auth:     authMetrics,
	}, nil
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is used by tests to gather values.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
