package render

import (
	"strconv"
	"strings"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/output"
)

// Props is the parameter shape handed to a renderer.
// A structural wrapper (Tag) places Content inside an element carrying Attrs.
type Props[O any] interface {
	Content(f output.Factory[O]) []O
	Attrs() []output.Attr
}

// ChildrenProps is the shape of wrappers that only take children:
// the marks and blockquote.
type ChildrenProps[O any] struct {
	Children []O
}

func (p ChildrenProps[O]) Content(output.Factory[O]) []O { return p.Children }
func (p ChildrenProps[O]) Attrs() []output.Attr          { return nil }

// BlockProps is the shape of the generic block wrapper around component blocks.
type BlockProps[O any] struct {
	ClassName string
	Children  []O
}

func (p BlockProps[O]) Content(output.Factory[O]) []O { return p.Children }

func (p BlockProps[O]) Attrs() []output.Attr {
	if p.ClassName == "" {
		return nil
	}
	return []output.Attr{{Key: "class", Val: p.ClassName}}
}

// ParagraphProps is the shape of the paragraph renderer.
type ParagraphProps[O any] struct {
	TextAlign domain.Align
	Children  []O
}

func (p ParagraphProps[O]) Content(output.Factory[O]) []O { return p.Children }
func (p ParagraphProps[O]) Attrs() []output.Attr {
	return output.Style("text-align", string(p.TextAlign))
}

// HeadingProps is the shape of the heading renderer. Level is between 1 and 6.
type HeadingProps[O any] struct {
	Level     int
	TextAlign domain.Align
	Children  []O
}

func (p HeadingProps[O]) Content(output.Factory[O]) []O { return p.Children }
func (p HeadingProps[O]) Attrs() []output.Attr {
	return output.Style("text-align", string(p.TextAlign))
}

// CodeProps is the shape of the code renderer: the raw text of the code block.
type CodeProps[O any] struct {
	Text string
}

func (p CodeProps[O]) Content(f output.Factory[O]) []O { return []O{f.Text(p.Text)} }
func (p CodeProps[O]) Attrs() []output.Attr            { return nil }

// LayoutProps is the shape of the layout renderer. Layout holds one fraction per column.
type LayoutProps[O any] struct {
	Layout   []float64
	Children []O
}

func (p LayoutProps[O]) Content(output.Factory[O]) []O { return p.Children }
func (p LayoutProps[O]) Attrs() []output.Attr {
	return output.Style("display", "grid", "grid-template-columns", gridColumns(p.Layout))
}

// DividerProps is the empty shape of the divider renderer.
type DividerProps[O any] struct{}

func (DividerProps[O]) Content(output.Factory[O]) []O { return nil }
func (DividerProps[O]) Attrs() []output.Attr          { return nil }

// ListType tells ordered lists from unordered ones.
type ListType string

const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// ListProps is the shape of the list renderer.
type ListProps[O any] struct {
	Type     ListType
	Children []O
}

func (p ListProps[O]) Content(output.Factory[O]) []O { return p.Children }
func (p ListProps[O]) Attrs() []output.Attr          { return nil }

// LinkProps is the shape of the link renderer.
type LinkProps[O any] struct {
	Href     string
	Children []O
}

func (p LinkProps[O]) Content(output.Factory[O]) []O { return p.Children }
func (p LinkProps[O]) Attrs() []output.Attr {
	return []output.Attr{{Key: "href", Val: p.Href}}
}

// RelationshipProps is the shape of the relationship renderer.
// Data is nil when the document carries no resolved target.
type RelationshipProps[O any] struct {
	Relationship string
	Data         *domain.RelationshipData
}

// Content is the label of the target, falling back to its id.
func (p RelationshipProps[O]) Content(f output.Factory[O]) []O {
	if p.Data == nil {
		return nil
	}
	label := p.Data.Label
	if label == "" {
		label = p.Data.ID
	}
	if label == "" {
		return nil
	}
	return []O{f.Text(label)}
}

func (p RelationshipProps[O]) Attrs() []output.Attr { return nil }

func gridColumns(layout []float64) string {
	cols := make([]string, len(layout))
	for i, fr := range layout {
		cols[i] = strconv.FormatFloat(fr, 'f', -1, 64) + "fr"
	}
	return strings.Join(cols, " ")
}
