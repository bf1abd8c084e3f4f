package docrender_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docrender"
	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/observability"
	"github.com/aretw0/docrender/pkg/output"
	"github.com/aretw0/docrender/pkg/output/tree"
	"github.com/aretw0/docrender/pkg/render"
)

type node = *tree.Node

func sampleDoc() domain.Document {
	return domain.Document{
		domain.Heading{Level: 1, Children: []domain.Node{domain.Text{Text: "Title"}}},
		domain.Paragraph{Children: []domain.Node{
			domain.Text{Text: "bold", Marks: domain.Marks(domain.MarkBold)},
			domain.Text{Text: " plain"},
		}},
		domain.ComponentBlock{
			Component: "notice",
			Props:     map[string]any{"intent": "warning"},
			Children: []domain.Node{domain.ComponentProp{
				PropPath: domain.PropPath{domain.Key("content")},
				Children: []domain.Node{domain.Paragraph{Children: []domain.Node{domain.Text{Text: "careful"}}}},
			}},
		},
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := docrender.RenderHTML(sampleDoc()[:2])
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1><p><strong>bold</strong> plain</p>", out)
}

func TestRenderMarkdown(t *testing.T) {
	out, err := docrender.RenderMarkdown(sampleDoc()[:2])
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\n**bold** plain\n", out)
}

func TestNew_OptionsApplyInOrder(t *testing.T) {
	hr := func(tag string) docrender.Option[node] {
		return docrender.WithRenderers(render.Renderers[node]{
			Block: render.BlockRenderers[node]{Divider: render.Tag[node, render.DividerProps[node]](tag)},
		})
	}
	eng := docrender.New[node](tree.Factory{}, hr("br"), hr("wbr"))

	out, err := eng.Render(domain.Document{domain.Divider{}, domain.Paragraph{}})
	require.NoError(t, err)
	assert.Equal(t, "<wbr></wbr><p></p>", tree.String(out), "later overrides win, other slots keep the defaults")
}

func TestNew_ComponentBlocksAccumulate(t *testing.T) {
	block := func(text string) render.ComponentBlock[node] {
		return render.ComponentFunc[node](func(f output.Factory[node], _ map[string]any) node {
			return f.Text(text)
		})
	}
	eng := docrender.New[node](tree.Factory{},
		docrender.WithComponentBlocks(render.ComponentBlocks[node]{"a": block("first"), "b": block("b")}),
		docrender.WithComponentBlocks(render.ComponentBlocks[node]{"a": block("second")}),
	)

	out, err := eng.Render(domain.Document{
		domain.ComponentBlock{Component: "a"},
		domain.ComponentBlock{Component: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`<div class="wrapper-component-block wrapper-component-block-a">second</div>`+
			`<div class="wrapper-component-block wrapper-component-block-b">b</div>`,
		tree.String(out))
}

func TestEngine_InvalidPropPathIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	eng := docrender.New[node](tree.Factory{},
		docrender.WithLogger[node](logger),
		docrender.WithComponentBlocks(render.ComponentBlocks[node]{
			"x": render.ComponentFunc[node](func(f output.Factory[node], _ map[string]any) node { return f.Fragment() }),
		}),
	)

	_, err := eng.Render(domain.Document{domain.ComponentBlock{
		Component: "x",
		Props:     map[string]any{"title": "plain"},
		Children: []domain.Node{domain.ComponentProp{
			PropPath: domain.PropPath{domain.Key("title"), domain.Key("nested")},
		}},
	}})

	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrInvalidPropPath)
	assert.Contains(t, buf.String(), "render failed")
}

func TestParseFormat(t *testing.T) {
	tests := map[string]docrender.Format{
		"":         docrender.FormatHTML,
		"HTML":     docrender.FormatHTML,
		"md":       docrender.FormatMarkdown,
		"markdown": docrender.FormatMarkdown,
		"json":     docrender.FormatTree,
		"tree":     docrender.FormatTree,
	}
	for in, want := range tests {
		got, err := docrender.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := docrender.ParseFormat("pdf")
	assert.ErrorIs(t, err, docrender.ErrUnknownFormat)
}

func TestService_Render(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := &docrender.Service{Builtins: true, Metrics: observability.NewMetrics(reg)}

	out, err := svc.Render(docrender.FormatHTML, sampleDoc())
	require.NoError(t, err)
	assert.Contains(t, out, `<aside class="notice notice-warning" role="note"><p>careful</p></aside>`)

	md, err := svc.Render(docrender.FormatMarkdown, sampleDoc())
	require.NoError(t, err)
	assert.Contains(t, md, "careful")

	js, err := svc.Render(docrender.FormatTree, sampleDoc()[:1])
	require.NoError(t, err)
	var nodes []*tree.Node
	require.NoError(t, json.Unmarshal([]byte(js), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "h1", nodes[0].Tag)

	_, err = svc.Render("pdf", sampleDoc())
	assert.ErrorIs(t, err, docrender.ErrUnknownFormat)

	count, err := testutil.GatherAndCount(reg, "docrender_documents_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestService_ZeroValueSkipsComponents(t *testing.T) {
	var svc docrender.Service
	out, err := svc.Render(docrender.FormatHTML, sampleDoc()[2:])
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, docrender.Version)
}
