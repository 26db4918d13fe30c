package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"zerox/netpolicy/pkg/policy/engine"
	"zerox/netpolicy/pkg/state"
)

// DecisionMetrics holds the Prometheus collectors for the decision engine.
type DecisionMetrics struct {
	registry *prometheus.Registry

	decisionsTotal   *prometheus.CounterVec
	decisionDuration *prometheus.HistogramVec
	noMatchTotal     prometheus.Counter
	reloadsTotal     *prometheus.CounterVec
	networkState     *prometheus.GaugeVec
}

// NewDecisionMetrics creates and registers the engine collectors on a fresh
// registry. Namespace defaults to "netpolicy" when empty.
func NewDecisionMetrics(namespace string) *DecisionMetrics {
	if namespace == "" {
		namespace = "netpolicy"
	}

	m := &DecisionMetrics{
		registry: prometheus.NewRegistry(),

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Total number of policy decisions, by winning rule and action.",
			},
			[]string{"rule", "action"},
		),

		decisionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "decision_duration_seconds",
				Help:      "Time spent evaluating a single decision.",
				Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005},
			},
			[]string{"action"},
		),

		noMatchTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "no_match_total",
				Help:      "Total number of decisions where no rule matched.",
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ruleset_reloads_total",
				Help:      "Total number of ruleset reload attempts, by outcome.",
			},
			[]string{"status"},
		),

		networkState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "network_state",
				Help:      "Current network state (1 for the active state, 0 otherwise).",
			},
			[]string{"state"},
		),
	}

	m.registry.MustRegister(
		m.decisionsTotal,
		m.decisionDuration,
		m.noMatchTotal,
		m.reloadsTotal,
		m.networkState,
	)

	return m
}

// Registry returns the registry holding the engine collectors.
func (m *DecisionMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveDecision implements engine.Observer.
func (m *DecisionMetrics) ObserveDecision(_ *engine.Context, st state.State, d engine.Decision, elapsed time.Duration) {
	if !d.Matched {
		m.noMatchTotal.Inc()
		m.decisionDuration.WithLabelValues(string(engine.ActionNone)).Observe(elapsed.Seconds())
		m.setState(st)
		return
	}

	m.decisionsTotal.WithLabelValues(d.Rule, string(d.Action)).Inc()
	m.decisionDuration.WithLabelValues(string(d.Action)).Observe(elapsed.Seconds())
	m.setState(st)
}

// RecordReload records the outcome of a ruleset reload attempt.
func (m *DecisionMetrics) RecordReload(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.reloadsTotal.WithLabelValues(status).Inc()
}

// SetState records the currently active network state.
func (m *DecisionMetrics) SetState(st state.State) {
	m.setState(st)
}

func (m *DecisionMetrics) setState(active state.State) {
	for _, st := range state.All() {
		v := 0.0
		if st == active {
			v = 1.0
		}
		m.networkState.WithLabelValues(string(st)).Set(v)
	}
}
