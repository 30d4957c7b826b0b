package metrics

import "github.com/prometheus/client_golang/prometheus"

type AuthMetrics struct {
	logins *prometheus.CounterVec
}

func NewAuthMetrics(registry *prometheus.Registry) (*AuthMetrics, error) {
	m := &AuthMetrics{
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"}, // result: success, invalid, locked
		),
	}
	if err := registry.Register(m.logins); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *AuthMetrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}
