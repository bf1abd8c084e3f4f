// Package html is an output backend building golang.org/x/net/html node trees.
package html

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/aretw0/docrender/pkg/output"
	"github.com/aretw0/docrender/pkg/render"
)

// Defaults returns a fresh copy of the built-in renderer registry for HTML output.
func Defaults() render.Renderers[*html.Node] {
	return render.DefaultRenderers[*html.Node]()
}

// Factory builds *html.Node values. Fragments are document nodes; appending one
// copies its children into the parent.
type Factory struct{}

var _ output.Factory[*html.Node] = Factory{}

func (Factory) Element(tag string, attrs []output.Attr, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	appendAll(n, children)
	return n
}

func (Factory) Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func (Factory) Fragment(children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.DocumentNode}
	appendAll(n, children)
	return n
}

func appendAll(parent *html.Node, children []*html.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Type == html.DocumentNode {
			// fragments stay intact so the same value can be placed twice
			for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
				parent.AppendChild(clone(gc))
			}
			continue
		}
		if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
			c = clone(c)
		}
		parent.AppendChild(c)
	}
}

func clone(n *html.Node) *html.Node {
	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(clone(c))
	}
	return cp
}

// Render serializes nodes in order.
func Render(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for i, n := range nodes {
		if n == nil {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render node %d: %w", i, err)
		}
	}
	return buf.String(), nil
}
