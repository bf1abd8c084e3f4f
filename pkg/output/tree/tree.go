// Package tree is an output backend producing a plain, JSON-serializable node tree.
//
// It is the reference Factory used by tests and by the JSON and Markdown outputs.
package tree

import (
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/docrender/pkg/output"
)

// NodeType tells the three node shapes apart.
type NodeType string

const (
	TypeElement  NodeType = "element"
	TypeText     NodeType = "text"
	TypeFragment NodeType = "fragment"
)

// Node is one output node.
type Node struct {
	Type     NodeType          `json:"type"`
	Tag      string            `json:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

// Attr returns the value of the attribute key, or "".
func (n *Node) Attr(key string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[key]
}

// IsEmpty reports whether n renders as nothing.
func (n *Node) IsEmpty() bool {
	if n == nil {
		return true
	}
	if n.Type != TypeFragment {
		return false
	}
	for _, c := range n.Children {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// String prints n in a compact markup form, e.g. `<p><strong>hi</strong></p>`.
// Fragments are transparent and attributes are printed in key order.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Type {
	case TypeText:
		sb.WriteString(n.Text)
	case TypeFragment:
		for _, c := range n.Children {
			c.write(sb)
		}
	case TypeElement:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
			sb.WriteString(" " + k + "=\"" + n.Attrs[k] + "\"")
		}
		sb.WriteByte('>')
		for _, c := range n.Children {
			c.write(sb)
		}
		sb.WriteString("</" + n.Tag + ">")
	}
}

// PlainText returns the concatenated text payloads below n.
func (n *Node) PlainText() string {
	var sb strings.Builder
	Walk(n, func(c *Node) {
		if c.Type == TypeText {
			sb.WriteString(c.Text)
		}
	})
	return sb.String()
}

// Walk calls fn for n and every node below it, parents first.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// String prints every node with Node.String and concatenates the results.
func String(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		n.write(&sb)
	}
	return sb.String()
}

// Factory builds tree nodes.
type Factory struct{}

var _ output.Factory[*Node] = Factory{}

func (Factory) Element(tag string, attrs []output.Attr, children ...*Node) *Node {
	n := &Node{Type: TypeElement, Tag: tag, Children: children}
	if len(attrs) > 0 {
		n.Attrs = make(map[string]string, len(attrs))
		for _, a := range attrs {
			n.Attrs[a.Key] = a.Val
		}
	}
	return n
}

func (Factory) Text(s string) *Node {
	return &Node{Type: TypeText, Text: s}
}

func (Factory) Fragment(children ...*Node) *Node {
	return &Node{Type: TypeFragment, Children: children}
}
