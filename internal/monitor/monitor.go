package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts session host activity.
type Metrics struct {
	GamesStarted  prometheus.Counter
	MovesAccepted prometheus.Counter
	MovesRejected *prometheus.CounterVec
	GamesFinished *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the counters on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Number of games created for new or reset sessions",
		}),
		MovesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_accepted_total",
			Help:      "Number of moves placed on a board",
		}),
		MovesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_rejected_total",
			Help:      "Number of moves ignored by the host",
		}, []string{"reason"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Number of games that reached a terminal state",
		}, []string{"outcome"}),
		gatherer: registry,
	}

	registry.MustRegister(
		m.GamesStarted,
		m.MovesAccepted,
		m.MovesRejected,
		m.GamesFinished,
	)

	return m
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
