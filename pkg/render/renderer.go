package render

import "github.com/aretw0/docrender/pkg/output"

// Renderer turns the props of one node into exactly one output node.
// Renderers must be stateless: the same props always yield an equivalent node.
type Renderer[O any, P Props[O]] interface {
	Render(f output.Factory[O], p P) O
}

// Tag is a renderer naming a trivial structural wrapper: the props' content is
// placed inside an element called by the tag name, carrying the props' attributes.
type Tag[O any, P Props[O]] string

func (t Tag[O, P]) Render(f output.Factory[O], p P) O {
	return f.Element(string(t), p.Attrs(), p.Content(f)...)
}

// Func is a renderer implemented by custom logic.
type Func[O any, P Props[O]] func(f output.Factory[O], p P) O

func (fn Func[O, P]) Render(f output.Factory[O], p P) O {
	return fn(f, p)
}

// MarkRenderer renders an inline mark or any other children-only wrapper.
type MarkRenderer[O any] = Renderer[O, ChildrenProps[O]]
