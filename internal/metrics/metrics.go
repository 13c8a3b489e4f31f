// Package metrics exports reader statistics and parse failures as
// Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/biggeezerdevelopment/jsonnum"
)

const DefaultNamespace = "jsonnum"

// Metrics accumulates jsonnum.Stats snapshots. It is safe for concurrent
// use.
type Metrics struct {
	fastPath   prometheus.Counter
	generic    prometheus.Counter
	longTokens prometheus.Counter
	errors     *prometheus.CounterVec
}

// New registers the counters with reg under namespace, or
// DefaultNamespace when namespace is empty.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{
		fastPath: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fast_path_total",
			Help:      "Number of tokens converted by a fast path",
		}),
		generic: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generic_total",
			Help:      "Number of tokens handed to the generic parsers",
		}),
		longTokens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "long_tokens_total",
			Help:      "Number of tokens that overflowed the lookahead window",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Number of failed reads by kind",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.fastPath, m.generic, m.longTokens, m.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe adds a reader's counters.
func (m *Metrics) Observe(s jsonnum.Stats) {
	m.fastPath.Add(float64(s.FastPath))
	m.generic.Add(float64(s.Generic))
	m.longTokens.Add(float64(s.LongTokens))
}

// ObserveError counts err under its jsonnum.ErrorKind. Nil is ignored.
func (m *Metrics) ObserveError(err error) {
	if err == nil {
		return
	}
	m.errors.WithLabelValues(jsonnum.ErrorKind(err)).Inc()
}
