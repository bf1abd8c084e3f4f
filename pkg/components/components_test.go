package components_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docrender/pkg/components"
	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/output"
	"github.com/aretw0/docrender/pkg/output/tree"
	"github.com/aretw0/docrender/pkg/render"
	"github.com/aretw0/docrender/pkg/schema"
)

func renderWith(t *testing.T, doc domain.Document, blocks render.ComponentBlocks[*tree.Node]) string {
	t.Helper()
	out, err := render.Document(tree.Factory{}, doc, render.Renderers[*tree.Node]{}, blocks)
	require.NoError(t, err)
	return tree.String(out)
}

func contentProp(children ...domain.Node) domain.ComponentProp {
	return domain.ComponentProp{
		Type:     domain.KindComponentBlockProp,
		PropPath: domain.PropPath{domain.Key("content")},
		Children: children,
	}
}

func TestNotice(t *testing.T) {
	doc := domain.Document{
		domain.ComponentBlock{
			Component: "notice",
			Props:     map[string]any{"intent": "warning", "content": nil},
			Children:  []domain.Node{contentProp(domain.Paragraph{Children: []domain.Node{domain.Text{Text: "Careful"}}})},
		},
	}

	got := renderWith(t, doc, components.Builtins[*tree.Node]())

	assert.Equal(t,
		`<div class="wrapper-component-block wrapper-component-block-notice">`+
			`<aside class="notice notice-warning" role="note"><p>Careful</p></aside></div>`,
		got)
}

func TestNotice_UnknownIntentFallsBack(t *testing.T) {
	out := components.Notice[*tree.Node]().Render(tree.Factory{}, map[string]any{"intent": "shout"})

	assert.Equal(t, "notice notice-info", out.Attr("class"))
}

func TestQuote(t *testing.T) {
	doc := domain.Document{
		domain.ComponentBlock{
			Component: "quote",
			Props:     map[string]any{"content": nil, "attribution": "Ada"},
			Children:  []domain.Node{contentProp(domain.Text{Text: "Hello"})},
		},
		domain.ComponentBlock{
			Component: "quote",
			Props:     map[string]any{"content": "plain"},
		},
	}

	got := renderWith(t, doc, components.Builtins[*tree.Node]())

	assert.Equal(t,
		`<div class="wrapper-component-block wrapper-component-block-quote"><figure class="quote"><blockquote>Hello</blockquote><figcaption>Ada</figcaption></figure></div>`+
			`<div class="wrapper-component-block wrapper-component-block-quote"><figure class="quote"><blockquote>plain</blockquote></figure></div>`,
		got)
}

func TestValue(t *testing.T) {
	f := tree.Factory{}
	node := f.Element("b", nil)

	assert.Same(t, node, components.Value[*tree.Node](f, node))
	assert.True(t, components.Value[*tree.Node](f, nil).IsEmpty())
	assert.Equal(t, "3", components.Value[*tree.Node](f, 3).String())
	assert.Equal(t, "ab", components.Value[*tree.Node](f, []any{"a", "b"}).String())
}

func TestRegistry(t *testing.T) {
	r := components.NewDefaultRegistry[*tree.Node]()
	assert.Equal(t, []string{"notice", "quote"}, r.Names())

	r.Register("Badge", render.ComponentFunc[*tree.Node](func(f output.Factory[*tree.Node], props map[string]any) *tree.Node {
		return f.Element("span", nil, components.Value(f, props["label"]))
	}))
	_, ok := r.Lookup("Badge")
	assert.True(t, ok)

	snapshot := r.Snapshot()
	r.Unregister("Badge")
	_, ok = r.Lookup("Badge")
	assert.False(t, ok)
	assert.Contains(t, snapshot, "Badge", "snapshots are not affected by later changes")

	got := renderWith(t, domain.Document{
		domain.ComponentBlock{Component: "Badge", Props: map[string]any{"label": "new"}},
	}, snapshot)
	assert.Equal(t, `<div class="wrapper-component-block wrapper-component-block-badge"><span>new</span></div>`, got)
}

func TestRegistry_Schemas(t *testing.T) {
	r := components.NewDefaultRegistry[*tree.Node]()

	schemas := r.Schemas()
	require.Contains(t, schemas, "notice")
	assert.NoError(t, schema.Validate(schemas["notice"], map[string]any{"intent": "error", "content": nil}))
	assert.Error(t, schema.Validate(schemas["notice"], map[string]any{"intent": "shout"}))

	r.Describe("Badge", schema.Schema{"label": schema.String()})
	assert.Contains(t, r.Schemas(), "Badge")
	r.Unregister("Badge")
	assert.NotContains(t, r.Schemas(), "Badge")
}

func TestBuiltinSchemas_MatchBuiltins(t *testing.T) {
	blocks := components.Builtins[*tree.Node]()
	for name := range components.BuiltinSchemas() {
		assert.Contains(t, blocks, name)
	}
	assert.Len(t, components.BuiltinSchemas(), len(blocks))
}

func TestRegistry_Concurrent(t *testing.T) {
	r := components.NewRegistry[*tree.Node]()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register("notice", components.Notice[*tree.Node]())
		}()
		go func() {
			defer wg.Done()
			_ = r.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"notice"}, r.Names())
}
