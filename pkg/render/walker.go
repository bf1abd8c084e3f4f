package render

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/output"
)

// Walker renders document nodes with a fixed registry.
// A Walker only reads its fields, so one value may serve concurrent renders.
type Walker[O any] struct {
	Factory    output.Factory[O]
	Renderers  Renderers[O]
	Components ComponentBlocks[O]
	Hooks      domain.RenderHooks
	Logger     *slog.Logger
}

// Document renders doc with the built-in renderers overridden by overrides and
// returns one output node per top-level node, in order.
// A zero overrides value keeps every default; components may be nil.
func Document[O any](f output.Factory[O], doc domain.Document, overrides Renderers[O], components ComponentBlocks[O]) ([]O, error) {
	w := &Walker[O]{
		Factory:    f,
		Renderers:  Merge(DefaultRenderers[O](), overrides),
		Components: components,
	}
	return w.RenderAll(doc)
}

// RenderAll renders nodes in order.
func (w *Walker[O]) RenderAll(nodes []domain.Node) ([]O, error) {
	return w.renderChildren(nodes, 0)
}

// Render renders a single node and its subtree.
func (w *Walker[O]) Render(n domain.Node) (O, error) {
	return w.render(n, 0)
}

func (w *Walker[O]) renderChildren(nodes []domain.Node, depth int) ([]O, error) {
	out := make([]O, len(nodes))
	for i, n := range nodes {
		rendered, err := w.render(n, depth)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

func (w *Walker[O]) render(n domain.Node, depth int) (O, error) {
	f := w.Factory

	switch v := n.(type) {
	case domain.Text:
		w.rendered(domain.KindText, depth, "")
		return ComposeMarks(f, w.Renderers.Inline, v.Text, v.Marks), nil
	case domain.Element:
		children, err := w.renderChildren(v.ChildNodes(), depth+1)
		if err != nil {
			var zero O
			return zero, err
		}
		return w.dispatch(v, children, depth)
	case nil:
		return output.Empty(f), nil
	}

	var zero O
	return zero, fmt.Errorf("unsupported node type %T", n)
}

// dispatch invokes the renderer for el with its already rendered children.
func (w *Walker[O]) dispatch(el domain.Element, children []O, depth int) (O, error) {
	f := w.Factory
	inline, block := w.Renderers.Inline, w.Renderers.Block

	switch v := el.(type) {
	case domain.Blockquote:
		if block.Blockquote == nil {
			return w.skip(v.Kind(), depth, domain.SkipRendererMissing, ""), nil
		}
		return w.done(v.Kind(), depth, block.Blockquote.Render(f, ChildrenProps[O]{Children: children})), nil

	case domain.Divider:
		if block.Divider == nil {
			return w.skip(v.Kind(), depth, domain.SkipRendererMissing, ""), nil
		}
		return w.done(v.Kind(), depth, block.Divider.Render(f, DividerProps[O]{})), nil

	case domain.Paragraph:
		if block.Paragraph == nil {
			return w.fallback(v.Kind(), depth, children), nil
		}
		return w.done(v.Kind(), depth, block.Paragraph.Render(f, ParagraphProps[O]{TextAlign: v.TextAlign, Children: children})), nil

	case domain.Heading:
		if block.Heading == nil {
			return w.fallback(v.Kind(), depth, children), nil
		}
		return w.done(v.Kind(), depth, block.Heading.Render(f, HeadingProps[O]{Level: v.Level, TextAlign: v.TextAlign, Children: children})), nil

	case domain.List:
		if block.List == nil {
			return w.fallback(v.Kind(), depth, children), nil
		}
		typ := ListUnordered
		if v.Ordered {
			typ = ListOrdered
		}
		return w.done(v.Kind(), depth, block.List.Render(f, ListProps[O]{Type: typ, Children: children})), nil

	case domain.Layout:
		if block.Layout == nil {
			return w.fallback(v.Kind(), depth, children), nil
		}
		return w.done(v.Kind(), depth, block.Layout.Render(f, LayoutProps[O]{Layout: v.Layout, Children: children})), nil

	case domain.Code:
		text, ok := codeText(v)
		if !ok {
			return w.skip(v.Kind(), depth, domain.SkipCodeShape, ""), nil
		}
		if block.Code == nil {
			return w.skip(v.Kind(), depth, domain.SkipRendererMissing, ""), nil
		}
		return w.done(v.Kind(), depth, block.Code.Render(f, CodeProps[O]{Text: text})), nil

	case domain.Link:
		if inline.Link == nil {
			return w.fallback(v.Kind(), depth, children), nil
		}
		return w.done(v.Kind(), depth, inline.Link.Render(f, LinkProps[O]{Href: v.Href, Children: children})), nil

	case domain.Relationship:
		if inline.Relationship == nil {
			return w.fallback(v.Kind(), depth, children), nil
		}
		return w.done(v.Kind(), depth, inline.Relationship.Render(f, RelationshipProps[O]{
			Relationship: v.Relationship,
			Data:         normalizeRelationship(v.Data),
		})), nil

	case domain.ComponentBlock:
		return w.component(v, children, depth)
	}

	return w.fallback(el.Kind(), depth, children), nil
}

func (w *Walker[O]) component(v domain.ComponentBlock, children []O, depth int) (O, error) {
	impl, ok := w.Components[v.Component]
	if !ok || impl == nil {
		return w.skip(v.Kind(), depth, domain.SkipComponentMissing, v.Component), nil
	}

	props, err := InjectChildren(v.Props, v.Children, children)
	if err != nil {
		var zero O
		return zero, fmt.Errorf("component block %q: %w", v.Component, err)
	}

	f := w.Factory
	out := impl.Render(f, props)

	block := w.Renderers.Block.Block
	if block == nil {
		return w.skip(v.Kind(), depth, domain.SkipRendererMissing, v.Component), nil
	}

	w.rendered(v.Kind(), depth, v.Component)
	return block.Render(f, BlockProps[O]{
		ClassName: ComponentClassName(v.Component),
		Children:  []O{out},
	}), nil
}

// codeText returns the raw payload of a code element holding exactly one text leaf.
func codeText(c domain.Code) (string, bool) {
	if len(c.Children) != 1 {
		return "", false
	}
	t, ok := c.Children[0].(domain.Text)
	if !ok {
		return "", false
	}
	return t.Text, true
}

// normalizeRelationship keeps exactly the id, label and data fields.
func normalizeRelationship(d *domain.RelationshipData) *domain.RelationshipData {
	if d == nil {
		return nil
	}
	return &domain.RelationshipData{ID: d.ID, Label: d.Label, Data: d.Data}
}

// fallback emits the rendered children without a wrapper.
func (w *Walker[O]) fallback(kind string, depth int, children []O) O {
	w.rendered(kind, depth, "")
	return w.Factory.Fragment(children...)
}

func (w *Walker[O]) done(kind string, depth int, out O) O {
	w.rendered(kind, depth, "")
	return out
}

func (w *Walker[O]) rendered(kind string, depth int, component string) {
	if w.Hooks.OnNodeRender != nil {
		w.Hooks.OnNodeRender(&domain.NodeEvent{
			Type:      domain.EventNodeRender,
			Kind:      kind,
			Depth:     depth,
			Component: component,
		})
	}
}

func (w *Walker[O]) skip(kind string, depth int, reason domain.SkipReason, component string) O {
	w.logger().Debug("node rendered as nothing", "kind", kind, "reason", reason, "component", component, "depth", depth)
	if w.Hooks.OnNodeSkip != nil {
		w.Hooks.OnNodeSkip(&domain.NodeEvent{
			Type:      domain.EventNodeSkip,
			Kind:      kind,
			Depth:     depth,
			Reason:    reason,
			Component: component,
		})
	}
	return output.Empty(w.Factory)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func (w *Walker[O]) logger() *slog.Logger {
	if w.Logger == nil {
		return discard
	}
	return w.Logger
}
