package docrender

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/net/html"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/output"
	htmlout "github.com/aretw0/docrender/pkg/output/html"
	"github.com/aretw0/docrender/pkg/output/markdown"
	"github.com/aretw0/docrender/pkg/output/tree"
	"github.com/aretw0/docrender/pkg/render"
)

// Engine is the high-level entry point of the library.
// It holds a merged renderer registry and the component blocks for one output type.
type Engine[O any] struct {
	factory    output.Factory[O]
	renderers  render.Renderers[O]
	components render.ComponentBlocks[O]
	hooks      domain.RenderHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option[O any] func(*Engine[O])

// WithRenderers merges overrides over the registry slot by slot.
// Options apply in order, so later overrides win.
func WithRenderers[O any](overrides render.Renderers[O]) Option[O] {
	return func(e *Engine[O]) {
		e.renderers = render.Merge(e.renderers, overrides)
	}
}

// WithComponentBlocks registers component block implementations.
// Blocks are added to those already registered; a repeated name replaces the earlier block.
func WithComponentBlocks[O any](blocks render.ComponentBlocks[O]) Option[O] {
	return func(e *Engine[O]) {
		if e.components == nil {
			e.components = make(render.ComponentBlocks[O], len(blocks))
		}
		for name, b := range blocks {
			e.components[name] = b
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks[O any](hooks domain.RenderHooks) Option[O] {
	return func(e *Engine[O]) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger[O any](logger *slog.Logger) Option[O] {
	return func(e *Engine[O]) {
		e.logger = logger
	}
}

// New initializes an Engine that builds output through f with the default renderers.
func New[O any](f output.Factory[O], opts ...Option[O]) *Engine[O] {
	eng := &Engine[O]{
		factory:   f,
		renderers: render.DefaultRenderers[O](),
	}
	for _, opt := range opts {
		opt(eng)
	}
	// Ensure logger is initialized so the walker never falls back silently.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

// Render renders doc and returns one output node per top-level node.
// The only error is an invalid prop path inside a component block.
func (e *Engine[O]) Render(doc domain.Document) ([]O, error) {
	start := time.Now()
	w := &render.Walker[O]{
		Factory:    e.factory,
		Renderers:  e.renderers,
		Components: e.components,
		Hooks:      e.hooks,
		Logger:     e.logger,
	}
	out, err := w.RenderAll(doc)
	if err != nil {
		e.logger.Error("render failed", "err", err)
		return nil, err
	}
	e.logger.Debug("document rendered", "nodes", len(doc), "elapsed", time.Since(start))
	return out, nil
}

// Renderers returns the merged registry used by the engine.
func (e *Engine[O]) Renderers() render.Renderers[O] {
	return e.renderers
}

// RenderHTML renders doc into an HTML string.
func RenderHTML(doc domain.Document, opts ...Option[*html.Node]) (string, error) {
	nodes, err := New[*html.Node](htmlout.Factory{}, opts...).Render(doc)
	if err != nil {
		return "", err
	}
	return htmlout.Render(nodes)
}

// RenderTree renders doc into the plain tree representation.
func RenderTree(doc domain.Document, opts ...Option[*tree.Node]) ([]*tree.Node, error) {
	return New[*tree.Node](tree.Factory{}, opts...).Render(doc)
}

// RenderMarkdown renders doc into CommonMark.
func RenderMarkdown(doc domain.Document, opts ...Option[*tree.Node]) (string, error) {
	nodes, err := RenderTree(doc, opts...)
	if err != nil {
		return "", err
	}
	return markdown.Render(nodes), nil
}
