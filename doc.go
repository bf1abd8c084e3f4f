/*
Package docrender renders rich-text document trees into presentation nodes.

A document is an ordered sequence of nodes: text leaves carrying inline marks and
elements (paragraphs, headings, lists, links, component blocks and so on) carrying
children. Rendering walks the tree depth first, composes marks around text and
hands every element to a pluggable renderer. Callers override any renderer slot
without restating the others.

# Concept

The engine never builds presentation nodes itself. An output.Factory supplies
elements, text and fragments, so the same document can become an HTML tree
(pkg/output/html), a plain JSON-friendly tree (pkg/output/tree) or Markdown
(pkg/output/markdown).

Component blocks embed externally implemented components. Their rendered children
are spliced into a private copy of the block's props at the child's prop path.

# Usage

	doc, err := codec.DecodeString(`[{"type":"paragraph","children":[{"text":"hi","bold":true}]}]`)
	if err != nil {
		log.Fatal(err)
	}

	out, err := docrender.RenderHTML(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out) // <p><strong>hi</strong></p>

Custom renderers are merged over the defaults:

	eng := docrender.New[*html.Node](htmlout.Factory{},
		docrender.WithRenderers(render.Renderers[*html.Node]{
			Block: render.BlockRenderers[*html.Node]{
				Divider: render.Tag[*html.Node, render.DividerProps[*html.Node]]("br"),
			},
		}),
		docrender.WithComponentBlocks(components.Builtins[*html.Node]()),
	)

# Storage

Documents can be persisted through ports.DocumentStore. Adapters exist for memory,
Redis and Loam (file system) in pkg/adapters.
*/
package docrender
