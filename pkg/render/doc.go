/*
Package render turns a document tree into presentation nodes.

The walker visits the tree depth-first and bottom-up: every element renders its
children in array order first, then hands the rendered children and its own
attributes to the renderer registered for its kind. Text leaves are wrapped in
their inline marks, always in the order the marks are declared in the inline
registry.

# Registry

Renderers are grouped by context. Inline renderers cover the eight marks plus link
and relationship; block renderers cover block, paragraph, blockquote, code, layout,
divider, heading and list. A Renderers value passed as override replaces only the
slots it sets:

	overrides := render.Renderers[*html.Node]{
		Block: render.BlockRenderers[*html.Node]{
			Paragraph: render.Func[*html.Node, render.ParagraphProps[*html.Node]](myParagraph),
		},
	}
	nodes, err := render.Document(htmlout.Factory{}, doc, overrides, nil)

A renderer is either a Tag, naming a plain structural wrapper, or a Func with
custom logic. Both satisfy Renderer, so the walker never inspects which one it got.

# Component blocks

Component blocks are looked up by name in a separate ComponentBlocks map. Their
props are deep-copied and every child carrying a prop path has its rendered output
spliced into the copy before the component is invoked. A malformed prop path is the
only error the walker returns.
*/
package render
