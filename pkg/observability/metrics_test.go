package observability_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/observability"
	"github.com/aretw0/docrender/pkg/output/tree"
	"github.com/aretw0/docrender/pkg/render"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	w := render.Walker[*tree.Node]{
		Factory:   tree.Factory{},
		Renderers: render.DefaultRenderers[*tree.Node](),
		Hooks:     m.Hooks(),
	}
	_, err := w.RenderAll(domain.Document{
		domain.Paragraph{Children: []domain.Node{domain.Text{Text: "a"}, domain.Text{Text: "b"}}},
		domain.ComponentBlock{Component: "missing"},
	})
	require.NoError(t, err)

	expected := `
# HELP docrender_nodes_rendered_total Total number of nodes rendered, by kind
# TYPE docrender_nodes_rendered_total counter
docrender_nodes_rendered_total{kind="paragraph"} 1
docrender_nodes_rendered_total{kind="text"} 2
# HELP docrender_nodes_skipped_total Total number of nodes rendered as nothing, by kind and reason
# TYPE docrender_nodes_skipped_total counter
docrender_nodes_skipped_total{kind="component-block",reason="component_missing"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"docrender_nodes_rendered_total", "docrender_nodes_skipped_total"))
}

func TestMetrics_ObserveDocument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveDocument("html", 2*time.Millisecond, nil)
	m.ObserveDocument("html", time.Millisecond, errors.New("boom"))
	m.ObserveDocument("markdown", time.Millisecond, nil)

	count, err := testutil.GatherAndCount(reg, "docrender_documents_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = testutil.GatherAndCount(reg, "docrender_render_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one histogram per format")
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		m := observability.NewMetrics(nil)
		m.Hooks().OnNodeRender(&domain.NodeEvent{Kind: "text"})
	})
}

func TestChain(t *testing.T) {
	var calls []string
	a := domain.RenderHooks{OnNodeRender: func(*domain.NodeEvent) { calls = append(calls, "a") }}
	b := domain.RenderHooks{
		OnNodeRender: func(*domain.NodeEvent) { calls = append(calls, "b") },
		OnNodeSkip:   func(*domain.NodeEvent) { calls = append(calls, "skip") },
	}

	h := observability.Chain(a, domain.RenderHooks{}, b)
	h.OnNodeRender(&domain.NodeEvent{})
	h.OnNodeSkip(&domain.NodeEvent{})

	assert.Equal(t, []string{"a", "b", "skip"}, calls)
	assert.Nil(t, observability.Chain().OnNodeRender)
}
