package domain

import "fmt"

// Node is one entry of a document tree: a Text leaf or an Element.
// The set of implementations is closed to this package.
type Node interface {
	node()
}

// Element is a node that has a kind and children.
// Elements are never leaves, even when they have no children.
type Element interface {
	Node
	// Kind returns the discriminator of the element, e.g. "paragraph".
	Kind() string
	// ChildNodes returns the children in document order.
	ChildNodes() []Node
}

// Document is the ordered sequence of top-level nodes.
type Document []Node

// Align is the text alignment of paragraphs and headings.
// The zero value means the host's default (start) alignment.
type Align string

const (
	AlignStart  Align = ""
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Text is a leaf carrying a string payload and its inline marks.
type Text struct {
	Text  string
	Marks MarkSet
}

func (Text) node() {}

// Paragraph is a block of inline content.
type Paragraph struct {
	TextAlign Align
	Children  []Node
}

func (Paragraph) node()                {}
func (Paragraph) Kind() string         { return KindParagraph }
func (p Paragraph) ChildNodes() []Node { return p.Children }

// Heading is a section title of level 1 to 6.
type Heading struct {
	Level     int
	TextAlign Align
	Children  []Node
}

func (Heading) node()                {}
func (Heading) Kind() string         { return KindHeading }
func (h Heading) ChildNodes() []Node { return h.Children }

// Blockquote quotes its children.
type Blockquote struct {
	Children []Node
}

func (Blockquote) node()                {}
func (Blockquote) Kind() string         { return KindBlockquote }
func (b Blockquote) ChildNodes() []Node { return b.Children }

// Code is a preformatted block. It is only rendered when it holds exactly one
// Text child.
type Code struct {
	Children []Node
}

func (Code) node()                {}
func (Code) Kind() string         { return KindCode }
func (c Code) ChildNodes() []Node { return c.Children }

// Layout arranges its children in columns sized by the Layout fractions.
type Layout struct {
	Layout   []float64
	Children []Node
}

func (Layout) node()                {}
func (Layout) Kind() string         { return KindLayout }
func (l Layout) ChildNodes() []Node { return l.Children }

// Divider is a parameterless structural marker. Its children are ignored.
type Divider struct {
	Children []Node
}

func (Divider) node()                {}
func (Divider) Kind() string         { return KindDivider }
func (d Divider) ChildNodes() []Node { return d.Children }

// List is an ordered or unordered list.
type List struct {
	Ordered  bool
	Children []Node
}

func (List) node() {}

func (l List) Kind() string {
	if l.Ordered {
		return KindOrderedList
	}
	return KindUnorderedList
}

func (l List) ChildNodes() []Node { return l.Children }

// Link is an inline hyperlink.
type Link struct {
	Href     string
	Children []Node
}

func (Link) node()                {}
func (Link) Kind() string         { return KindLink }
func (l Link) ChildNodes() []Node { return l.Children }

// RelationshipData is the resolved target of a relationship.
type RelationshipData struct {
	ID    string         `json:"id" mapstructure:"id"`
	Label string         `json:"label,omitempty" mapstructure:"label"`
	Data  map[string]any `json:"data,omitempty" mapstructure:"data"`
}

// Relationship is an inline reference to another stored item.
// Data is nil when the reference was not resolved.
type Relationship struct {
	Relationship string
	Data         *RelationshipData
	Children     []Node
}

func (Relationship) node()                {}
func (Relationship) Kind() string         { return KindRelationship }
func (r Relationship) ChildNodes() []Node { return r.Children }

// ComponentBlock embeds an externally implemented component.
// Props holds only plain data (maps, slices, primitives); rendered children are
// spliced into a copy of it at their PropPath.
type ComponentBlock struct {
	Component string
	Props     map[string]any
	Children  []Node
}

func (ComponentBlock) node()                {}
func (ComponentBlock) Kind() string         { return KindComponentBlock }
func (c ComponentBlock) ChildNodes() []Node { return c.Children }

// ComponentProp is the child of a component block holding the content of one prop.
type ComponentProp struct {
	Type     string
	PropPath PropPath
	Children []Node
}

func (ComponentProp) node() {}

func (c ComponentProp) Kind() string {
	if c.Type == "" {
		return KindComponentBlockProp
	}
	return c.Type
}

func (c ComponentProp) ChildNodes() []Node { return c.Children }

// Unknown is an element of a kind this package does not model.
// Attrs keeps every attribute except "type" and "children".
type Unknown struct {
	Type     string
	Attrs    map[string]any
	Children []Node
}

func (Unknown) node()                {}
func (u Unknown) Kind() string       { return u.Type }
func (u Unknown) ChildNodes() []Node { return u.Children }

// PropPathOf returns the prop path carried by a component block child.
// The bool is false for nodes that carry no path. A propPath attribute on an Unknown
// node that is not a list of keys and indices is an error.
func PropPathOf(n Node) (PropPath, bool, error) {
	switch v := n.(type) {
	case ComponentProp:
		return v.PropPath, v.PropPath != nil, nil
	case Unknown:
		attr, present := v.Attrs[KeyPropPath]
		if !present || attr == nil {
			return nil, false, nil
		}
		raw, isList := attr.([]any)
		if !isList {
			return nil, true, fmt.Errorf("propPath: expected a list, got %T", attr)
		}
		path, err := NewPropPath(raw...)
		if err != nil {
			return nil, true, fmt.Errorf("propPath: %w", err)
		}
		return path, true, nil
	}
	return nil, false, nil
}
