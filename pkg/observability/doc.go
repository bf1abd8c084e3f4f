/*
Package observability provides Prometheus instrumentation for the renderer.

Metrics are fed from domain.RenderHooks, so any render call can be observed
without changes to the walker:

	m := observability.NewMetrics(prometheus.NewRegistry())
	w := render.Walker[*tree.Node]{Hooks: m.Hooks(), ...}

Document level timings are recorded by the caller through ObserveDocument.
*/
package observability
