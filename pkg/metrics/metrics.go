package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes
const (
	OutcomePrefilled = "prefilled"
	OutcomeEmpty     = "empty"
)

// Metrics holds the counters recorded while handling deep links
type Metrics struct {
	LinksHandled *prometheus.CounterVec
}

// NewMetrics creates the deep-link counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LinksHandled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swap_link_handled_total",
				Help: "Number of swap deep links handled, by outcome and rejection kind",
			},
			[]string{"outcome", "kind"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.LinksHandled)
	}

	return m
}

// ObserveLink records one handled link
func (m *Metrics) ObserveLink(outcome, kind string) {
	if m == nil {
		return
	}
	m.LinksHandled.WithLabelValues(outcome, kind).Inc()
}
