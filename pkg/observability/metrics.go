package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/docrender/pkg/domain"
)

// Metrics groups the collectors of the renderer.
type Metrics struct {
	nodes     *prometheus.CounterVec
	skips     *prometheus.CounterVec
	documents *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrender_nodes_rendered_total",
				Help: "Total number of nodes rendered, by kind",
			},
			[]string{"kind"},
		),
		skips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrender_nodes_skipped_total",
				Help: "Total number of nodes rendered as nothing, by kind and reason",
			},
			[]string{"kind", "reason"},
		),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrender_documents_total",
				Help: "Total number of documents rendered, by output format and result",
			},
			[]string{"format", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docrender_render_duration_seconds",
				Help:    "Duration of document renders",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"format"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.nodes, m.skips, m.documents, m.duration)
	}
	return m
}

// Hooks returns render hooks that count node events.
func (m *Metrics) Hooks() domain.RenderHooks {
	return domain.RenderHooks{
		OnNodeRender: func(e *domain.NodeEvent) {
			m.nodes.WithLabelValues(e.Kind).Inc()
		},
		OnNodeSkip: func(e *domain.NodeEvent) {
			m.skips.WithLabelValues(e.Kind, string(e.Reason)).Inc()
		},
	}
}

// ObserveDocument records one document render in the given output format.
func (m *Metrics) ObserveDocument(format string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.documents.WithLabelValues(format, result).Inc()
	m.duration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// Chain returns hooks that call every non-nil callback of hs in order.
func Chain(hs ...domain.RenderHooks) domain.RenderHooks {
	var render, skip []func(*domain.NodeEvent)
	for _, h := range hs {
		if h.OnNodeRender != nil {
			render = append(render, h.OnNodeRender)
		}
		if h.OnNodeSkip != nil {
			skip = append(skip, h.OnNodeSkip)
		}
	}
	return domain.RenderHooks{
		OnNodeRender: fanOut(render),
		OnNodeSkip:   fanOut(skip),
	}
}

func fanOut(fns []func(*domain.NodeEvent)) func(*domain.NodeEvent) {
	switch len(fns) {
	case 0:
		return nil
	case 1:
		return fns[0]
	}
	return func(e *domain.NodeEvent) {
		for _, fn := range fns {
			fn(e)
		}
	}
}
