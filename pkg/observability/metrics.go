package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/conduit/pkg/domain"
)

// Metrics holds the Prometheus collectors for pipeline traversals.
type Metrics struct {
	registry *prometheus.Registry

	stepsTotal     *prometheus.CounterVec
	effectsTotal   prometheus.Counter
	completedTotal *prometheus.CounterVec
	paused         prometheus.Gauge
}

// NewMetrics creates and registers the collectors on reg. Pass a fresh
// registry in tests to keep them isolated.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		stepsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conduit",
			Name:      "steps_total",
			Help:      "Pipeline steps entered, by step kind.",
		}, []string{"kind"}),
		effectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "conduit",
			Name:      "effects_total",
			Help:      "Side-effect requests emitted by paused traversals.",
		}),
		completedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conduit",
			Name:      "traversals_completed_total",
			Help:      "Finished traversals, by whether a response was sent.",
		}, []string{"sent"}),
		paused: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "conduit",
			Name:      "traversals_paused",
			Help:      "Traversals currently paused waiting for an effect result.",
		}),
	}
}

// Hooks returns lifecycle hooks feeding these collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, ev *domain.StepEvent) {
			m.stepsTotal.WithLabelValues(string(ev.Kind)).Inc()
		},
		OnPause: func(_ context.Context, ev *domain.PauseEvent) {
			m.effectsTotal.Add(float64(ev.Effects))
			m.paused.Inc()
		},
		OnResume: func(_ context.Context, _ *domain.PauseEvent) {
			m.paused.Dec()
		},
		OnComplete: func(_ context.Context, ev *domain.CompleteEvent) {
			if ev.Sent {
				m.completedTotal.WithLabelValues("true").Inc()
			} else {
				m.completedTotal.WithLabelValues("false").Inc()
			}
		},
	}
}

// Handler returns an http.Handler exposing the registry, for mounting at
// /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
