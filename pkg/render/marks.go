package render

import (
	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/output"
)

// ComposeMarks renders a text leaf: the bare text wrapped in one element per
// active mark, in domain.MarkOrder. The first mark in that order ends up innermost.
// Marks without a registered renderer are left out.
func ComposeMarks[O any](f output.Factory[O], inline InlineRenderers[O], text string, marks domain.MarkSet) O {
	node := f.Text(text)
	for _, m := range domain.MarkOrder {
		if !marks.Has(m) {
			continue
		}
		r := inline.Mark(m)
		if r == nil {
			continue
		}
		node = r.Render(f, ChildrenProps[O]{Children: []O{node}})
	}
	return node
}
