package render

import (
	"strconv"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/output"
)

// InlineRenderers holds the renderers of inline contexts.
// The field order of the marks is the order in which they nest (see domain.MarkOrder).
type InlineRenderers[O any] struct {
	Bold          MarkRenderer[O]
	Code          MarkRenderer[O]
	Keyboard      MarkRenderer[O]
	Strikethrough MarkRenderer[O]
	Italic        MarkRenderer[O]
	Link          Renderer[O, LinkProps[O]]
	Subscript     MarkRenderer[O]
	Superscript   MarkRenderer[O]
	Underline     MarkRenderer[O]
	Relationship  Renderer[O, RelationshipProps[O]]
}

// Mark returns the renderer registered for m, or nil.
func (r InlineRenderers[O]) Mark(m domain.Mark) MarkRenderer[O] {
	switch m {
	case domain.MarkBold:
		return r.Bold
	case domain.MarkCode:
		return r.Code
	case domain.MarkKeyboard:
		return r.Keyboard
	case domain.MarkStrikethrough:
		return r.Strikethrough
	case domain.MarkItalic:
		return r.Italic
	case domain.MarkSubscript:
		return r.Subscript
	case domain.MarkSuperscript:
		return r.Superscript
	case domain.MarkUnderline:
		return r.Underline
	}
	return nil
}

func (r InlineRenderers[O]) merge(o InlineRenderers[O]) InlineRenderers[O] {
	return InlineRenderers[O]{
		Bold:          or(r.Bold, o.Bold),
		Code:          or(r.Code, o.Code),
		Keyboard:      or(r.Keyboard, o.Keyboard),
		Strikethrough: or(r.Strikethrough, o.Strikethrough),
		Italic:        or(r.Italic, o.Italic),
		Link:          or(r.Link, o.Link),
		Subscript:     or(r.Subscript, o.Subscript),
		Superscript:   or(r.Superscript, o.Superscript),
		Underline:     or(r.Underline, o.Underline),
		Relationship:  or(r.Relationship, o.Relationship),
	}
}

// BlockRenderers holds the renderers of block contexts.
type BlockRenderers[O any] struct {
	Block      Renderer[O, BlockProps[O]]
	Paragraph  Renderer[O, ParagraphProps[O]]
	Blockquote Renderer[O, ChildrenProps[O]]
	Code       Renderer[O, CodeProps[O]]
	Layout     Renderer[O, LayoutProps[O]]
	Divider    Renderer[O, DividerProps[O]]
	Heading    Renderer[O, HeadingProps[O]]
	List       Renderer[O, ListProps[O]]
}

func (r BlockRenderers[O]) merge(o BlockRenderers[O]) BlockRenderers[O] {
	return BlockRenderers[O]{
		Block:      or(r.Block, o.Block),
		Paragraph:  or(r.Paragraph, o.Paragraph),
		Blockquote: or(r.Blockquote, o.Blockquote),
		Code:       or(r.Code, o.Code),
		Layout:     or(r.Layout, o.Layout),
		Divider:    or(r.Divider, o.Divider),
		Heading:    or(r.Heading, o.Heading),
		List:       or(r.List, o.List),
	}
}

// Renderers is a renderer registry. The same type describes a complete registry
// and a partial override, where nil slots mean "keep the base renderer".
type Renderers[O any] struct {
	Inline InlineRenderers[O]
	Block  BlockRenderers[O]
}

// Merge returns base with every non-nil slot of override applied, one slot at a time.
// Neither argument is modified.
func Merge[O any](base, override Renderers[O]) Renderers[O] {
	return Renderers[O]{
		Inline: base.Inline.merge(override.Inline),
		Block:  base.Block.merge(override.Block),
	}
}

func or[O any, P Props[O]](base, override Renderer[O, P]) Renderer[O, P] {
	if override != nil {
		return override
	}
	return base
}

// DefaultRenderers returns the built-in registry.
// The value holds only tags and package-level functions, so copies share no
// mutable state.
func DefaultRenderers[O any]() Renderers[O] {
	return Renderers[O]{
		Inline: InlineRenderers[O]{
			Bold:          Tag[O, ChildrenProps[O]]("strong"),
			Code:          Tag[O, ChildrenProps[O]]("code"),
			Keyboard:      Tag[O, ChildrenProps[O]]("kbd"),
			Strikethrough: Tag[O, ChildrenProps[O]]("s"),
			Italic:        Tag[O, ChildrenProps[O]]("em"),
			Link:          Tag[O, LinkProps[O]]("a"),
			Subscript:     Tag[O, ChildrenProps[O]]("sub"),
			Superscript:   Tag[O, ChildrenProps[O]]("sup"),
			Underline:     Tag[O, ChildrenProps[O]]("u"),
			Relationship:  Func[O, RelationshipProps[O]](defaultRelationship[O]),
		},
		Block: BlockRenderers[O]{
			Block:      Tag[O, BlockProps[O]]("div"),
			Paragraph:  Func[O, ParagraphProps[O]](defaultParagraph[O]),
			Blockquote: Tag[O, ChildrenProps[O]]("blockquote"),
			Code:       Tag[O, CodeProps[O]]("pre"),
			Layout:     Func[O, LayoutProps[O]](defaultLayout[O]),
			Divider:    Tag[O, DividerProps[O]]("hr"),
			Heading:    Func[O, HeadingProps[O]](defaultHeading[O]),
			List:       Func[O, ListProps[O]](defaultList[O]),
		},
	}
}

func defaultRelationship[O any](f output.Factory[O], p RelationshipProps[O]) O {
	return f.Element("span", nil, p.Content(f)...)
}

func defaultParagraph[O any](f output.Factory[O], p ParagraphProps[O]) O {
	return f.Element("p", p.Attrs(), p.Children...)
}

func defaultHeading[O any](f output.Factory[O], p HeadingProps[O]) O {
	level := min(max(p.Level, 1), 6)
	return f.Element("h"+strconv.Itoa(level), p.Attrs(), p.Children...)
}

func defaultList[O any](f output.Factory[O], p ListProps[O]) O {
	tag := "ul"
	if p.Type == ListOrdered {
		tag = "ol"
	}
	items := make([]O, len(p.Children))
	for i, child := range p.Children {
		items[i] = f.Element("li", nil, child)
	}
	return f.Element(tag, nil, items...)
}

func defaultLayout[O any](f output.Factory[O], p LayoutProps[O]) O {
	cells := make([]O, len(p.Children))
	for i, child := range p.Children {
		cells[i] = f.Element("div", nil, child)
	}
	return f.Element("div", p.Attrs(), cells...)
}
