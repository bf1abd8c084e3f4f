package render_test

import (
	"testing"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/output"
	"github.com/aretw0/docrender/pkg/output/tree"
	"github.com/aretw0/docrender/pkg/render"
	"github.com/stretchr/testify/assert"
)

func TestComposeMarks_NoMarks(t *testing.T) {
	out := render.ComposeMarks(tree.Factory{}, render.DefaultRenderers[*tree.Node]().Inline, "plain", 0)

	assert.Equal(t, tree.TypeText, out.Type)
	assert.Equal(t, "plain", out.String())
}

func TestComposeMarks_OrderIsIndependentOfInsertion(t *testing.T) {
	inline := render.DefaultRenderers[*tree.Node]().Inline

	a := render.ComposeMarks(tree.Factory{}, inline, "x", domain.Marks(domain.MarkBold, domain.MarkItalic))
	b := render.ComposeMarks(tree.Factory{}, inline, "x", domain.Marks(domain.MarkItalic, domain.MarkBold))

	// bold is declared before italic, so it is the innermost wrapper
	assert.Equal(t, "<em><strong>x</strong></em>", a.String())
	assert.Equal(t, a, b)
}

func TestComposeMarks_AllMarks(t *testing.T) {
	var all domain.MarkSet
	for _, m := range domain.MarkOrder {
		all = all.With(m)
	}

	out := render.ComposeMarks(tree.Factory{}, render.DefaultRenderers[*tree.Node]().Inline, "k", all)

	assert.Equal(t,
		"<u><sup><sub><em><s><kbd><code><strong>k</strong></code></kbd></s></em></sub></sup></u>",
		out.String())
}

func TestComposeMarks_MissingRendererIsSkipped(t *testing.T) {
	inline := render.DefaultRenderers[*tree.Node]().Inline
	inline.Italic = nil

	out := render.ComposeMarks(tree.Factory{}, inline, "x", domain.Marks(domain.MarkItalic, domain.MarkUnderline))

	assert.Equal(t, "<u>x</u>", out.String())
}

func TestComposeMarks_CustomRenderer(t *testing.T) {
	inline := render.DefaultRenderers[*tree.Node]().Inline
	inline.Bold = render.Func[*tree.Node, render.ChildrenProps[*tree.Node]](
		func(f output.Factory[*tree.Node], p render.ChildrenProps[*tree.Node]) *tree.Node {
			return f.Element("b", []output.Attr{{Key: "class", Val: "loud"}}, p.Children...)
		})

	out := render.ComposeMarks(tree.Factory{}, inline, "x", domain.Marks(domain.MarkBold))

	assert.Equal(t, `<b class="loud">x</b>`, out.String())
}
