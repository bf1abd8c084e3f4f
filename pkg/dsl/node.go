package dsl

import "github.com/aretw0/docrender/pkg/domain"

// Child is anything that can be placed in a document.
type Child interface {
	Node() domain.Node
}

// Block wraps a finished node.
type Block struct {
	node domain.Node
}

// Node returns the wrapped node.
func (b Block) Node() domain.Node { return b.node }

// Raw wraps an existing domain node.
func Raw(n domain.Node) Block { return Block{node: n} }

// Span is a text leaf under construction. Mark methods return a modified copy.
type Span struct {
	text domain.Text
}

// T starts a text leaf.
func T(s string) Span { return Span{text: domain.Text{Text: s}} }

// Node returns the text leaf.
func (s Span) Node() domain.Node { return s.text }

// Mark adds an arbitrary mark.
func (s Span) Mark(m domain.Mark) Span {
	s.text.Marks = s.text.Marks.With(m)
	return s
}

func (s Span) Bold() Span          { return s.Mark(domain.MarkBold) }
func (s Span) Italic() Span        { return s.Mark(domain.MarkItalic) }
func (s Span) Underline() Span     { return s.Mark(domain.MarkUnderline) }
func (s Span) Strikethrough() Span { return s.Mark(domain.MarkStrikethrough) }
func (s Span) Code() Span          { return s.Mark(domain.MarkCode) }
func (s Span) Superscript() Span   { return s.Mark(domain.MarkSuperscript) }
func (s Span) Subscript() Span     { return s.Mark(domain.MarkSubscript) }
func (s Span) Keyboard() Span      { return s.Mark(domain.MarkKeyboard) }

func nodes(children []Child) []domain.Node {
	out := make([]domain.Node, len(children))
	for i, c := range children {
		out[i] = c.Node()
	}
	return out
}

// P builds a paragraph.
func P(children ...Child) Block {
	return Block{node: domain.Paragraph{Children: nodes(children)}}
}

// Aligned builds a paragraph with the given alignment.
func Aligned(align domain.Align, children ...Child) Block {
	return Block{node: domain.Paragraph{TextAlign: align, Children: nodes(children)}}
}

// H builds a heading of the given level.
func H(level int, children ...Child) Block {
	return Block{node: domain.Heading{Level: level, Children: nodes(children)}}
}

// Quote builds a blockquote.
func Quote(children ...Child) Block {
	return Block{node: domain.Blockquote{Children: nodes(children)}}
}

// Code builds a code block holding src.
func Code(src string) Block {
	return Block{node: domain.Code{Children: []domain.Node{domain.Text{Text: src}}}}
}

// Divider builds a divider.
func Divider() Block {
	return Block{node: domain.Divider{Children: []domain.Node{domain.Text{}}}}
}

// Link builds an inline link.
func Link(href string, children ...Child) Block {
	return Block{node: domain.Link{Href: href, Children: nodes(children)}}
}

// Mention builds a resolved relationship.
func Mention(relationship, id, label string) Block {
	return Block{node: domain.Relationship{
		Relationship: relationship,
		Data:         &domain.RelationshipData{ID: id, Label: label},
		Children:     []domain.Node{domain.Text{}},
	}}
}

// UL builds an unordered list; each item becomes a list item.
func UL(items ...Child) Block {
	return Block{node: domain.List{Children: listItems(items)}}
}

// OL builds an ordered list; each item becomes a list item.
func OL(items ...Child) Block {
	return Block{node: domain.List{Ordered: true, Children: listItems(items)}}
}

func listItems(items []Child) []domain.Node {
	out := make([]domain.Node, len(items))
	for i, item := range items {
		out[i] = domain.Unknown{Type: domain.KindListItem, Children: []domain.Node{
			domain.Unknown{Type: domain.KindListItemContent, Children: []domain.Node{item.Node()}},
		}}
	}
	return out
}

// Columns builds a layout; each area holds one child.
func Columns(layout []float64, areas ...Child) Block {
	out := make([]domain.Node, len(areas))
	for i, a := range areas {
		out[i] = domain.Unknown{Type: domain.KindLayoutArea, Children: []domain.Node{a.Node()}}
	}
	return Block{node: domain.Layout{Layout: layout, Children: out}}
}
