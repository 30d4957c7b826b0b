package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeCreated = "created"
	OutcomeReused  = "reused"
	OutcomeRetried = "retried"
)

// TaxonomyMetrics counts get-or-create outcomes per taxonomy kind.
type TaxonomyMetrics struct {
	resolutions *prometheus.CounterVec
}

func NewTaxonomyMetrics(registry *prometheus.Registry) (*TaxonomyMetrics, error) {
	m := &TaxonomyMetrics{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taxonomy_resolutions_total",
				Help: "Taxonomy get-or-create resolutions by outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
	if err := registry.Register(m.resolutions); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TaxonomyMetrics) RecordResolution(kind, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(kind, outcome).Inc()
}
