package observability

import (
	"context"
	"io"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "strata"

// Metrics records commit, dispatch and getter activity.
type Metrics struct {
	registry *prometheus.Registry

	Commits           *prometheus.CounterVec
	CommitDuration    *prometheus.HistogramVec
	Dispatches        *prometheus.CounterVec
	GetterEvaluations *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commits_total",
				Help:      "Total number of committed mutations by outcome",
			},
			[]string{"type", "outcome"},
		),
		CommitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "commit_duration_seconds",
				Help:      "Duration of mutation handlers",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"type"},
		),
		Dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatches_total",
				Help:      "Total number of dispatched actions by mode and outcome",
			},
			[]string{"type", "mode", "outcome"},
		),
		GetterEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "getter_evaluations_total",
				Help:      "Number of times a getter function actually ran",
			},
			[]string{"name"},
		),
	}
	m.registry.MustRegister(m.Commits, m.CommitDuration, m.Dispatches, m.GetterEvaluations)
	return m
}

// Registry exposes the private registry, e.g. for promhttp.HandlerFor.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(_ context.Context, e *domain.CommitEvent) {
			m.Commits.WithLabelValues(e.Type, outcome(e.Err)).Inc()
			m.CommitDuration.WithLabelValues(e.Type).Observe(e.Duration.Seconds())
		},
		OnDispatch: func(_ context.Context, e *domain.DispatchEvent) {
			mode := "sync"
			if e.Async {
				mode = "async"
			}
			m.Dispatches.WithLabelValues(e.Type, mode, outcome(e.Err)).Inc()
		},
		OnGetterEvaluate: func(e *domain.GetterEvent) {
			m.GetterEvaluations.WithLabelValues(e.Name).Inc()
		},
	}
}

// WriteText writes every collected metric in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
