package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docrender"
	"github.com/aretw0/docrender/pkg/adapters/memory"
	"github.com/aretw0/docrender/pkg/observability"
)

const sampleJSON = `[
	{"type": "heading", "level": 1, "children": [{"text": "Guide"}]},
	{"type": "paragraph", "children": [{"text": "Hello", "bold": true}, {"text": " world"}]}
]`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := &Server{
		Renderer: &docrender.Service{Builtins: true},
		Store:    memory.NewStore(),
	}
	return s, NewHandler(s)
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRender(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		contentType string
		contains    string
	}{
		{"default html", "", "text/html", "<h1>Guide</h1><p><strong>Hello</strong> world</p>"},
		{"markdown", "?format=markdown", "text/markdown", "# Guide\n\n**Hello** world"},
		{"tree", "?format=tree", "application/json", `"tag": "h1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/render"+tt.query, sampleJSON)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestRender_YAMLBody(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("- type: divider\n  children: []\n"))
	req.Header.Set("Content-Type", "application/yaml")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "<hr/>", w.Body.String())
}

func TestRender_Errors(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
	}{
		{"unknown format", "?format=pdf", sampleJSON, http.StatusBadRequest},
		{"malformed json", "", `[{"type":`, http.StatusBadRequest},
		{"bad node", "", `[{"type": "paragraph", "children": 3}]`, http.StatusBadRequest},
		{
			"invalid prop path", "",
			`[{"type": "component-block", "component": "notice", "props": {"content": "x"}, "children": [
				{"type": "component-block-prop", "propPath": ["content", "deep"], "children": [{"text": "y"}]}
			]}]`,
			http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/render"+tt.query, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestDocuments_Lifecycle(t *testing.T) {
	_, h := newTestServer(t)

	w := do(h, http.MethodGet, "/documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents": []}`, w.Body.String())

	w = do(h, http.MethodPut, "/documents/guide", sampleJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "guide", saved["id"])
	assert.Equal(t, "Guide", saved["title"])

	w = do(h, http.MethodGet, "/documents", "")
	assert.JSONEq(t, `{"documents": ["guide"]}`, w.Body.String())

	w = do(h, http.MethodGet, "/documents/guide?format=markdown", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Guide\n\n**Hello** world\n", w.Body.String())

	w = do(h, http.MethodGet, "/documents/guide", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Last-Modified"))
	assert.Contains(t, w.Body.String(), `"type":"heading"`)

	w = do(h, http.MethodDelete, "/documents/guide", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(h, http.MethodGet, "/documents/guide", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocuments_WithoutStore(t *testing.T) {
	h := NewHandler(&Server{})

	w := do(h, http.MethodGet, "/documents", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestHealthAndInfo(t *testing.T) {
	_, h := newTestServer(t)

	w := do(h, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = do(h, http.MethodGet, "/info", "")
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "docrender-http", info["app"])
	assert.ElementsMatch(t, []any{"html", "markdown", "tree"}, info["formats"])
	assert.Equal(t, map[string]any{"content": "any?", "attribution": "any?"}, info["components"].(map[string]any)["quote"])
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHandler(&Server{
		Renderer: &docrender.Service{Metrics: observability.NewMetrics(reg)},
		Gatherer: reg,
	})

	require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/render", sampleJSON).Code)

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `docrender_documents_total{format="html",result="ok"} 1`)
}

func TestSubscribeEvents(t *testing.T) {
	_, h := newTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?id=guide", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	waitFor := func(prefix string) string {
		t.Helper()
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		t.Fatalf("stream ended before %q", prefix)
		return ""
	}
	waitFor("data: connected")

	put, err := http.NewRequest(http.MethodPut, srv.URL+"/documents/guide", strings.NewReader(sampleJSON))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(put)
	require.NoError(t, err)
	putResp.Body.Close()

	assert.Equal(t, "event: saved", waitFor("event:"))
	assert.Contains(t, waitFor("data:"), `"id":"guide"`)
}

func TestStreamManager_Broadcast(t *testing.T) {
	sm := NewStreamManager(nil)
	one, cancelOne := sm.Subscribe("a")
	all, cancelAll := sm.Subscribe(AllDocuments)
	defer cancelAll()

	sm.Broadcast("a", Event{Type: EventSaved, ID: "a"})
	sm.Broadcast("b", Event{Type: EventDeleted, ID: "b"})

	assert.Equal(t, "a", (<-one).ID)
	assert.Equal(t, "a", (<-all).ID)
	assert.Equal(t, "b", (<-all).ID)
	assert.Empty(t, one)

	cancelOne()
	_, open := <-one
	assert.False(t, open)
}

func TestStreamManager_DroppedEventsUseServerLogger(t *testing.T) {
	var buf bytes.Buffer
	s := &Server{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	NewHandler(s)

	ch, cancel := s.Streams.Subscribe("a")
	defer cancel()
	for i := 0; i <= cap(ch); i++ {
		s.Streams.Broadcast("a", Event{Type: EventSaved, ID: "a"})
	}

	assert.Len(t, ch, cap(ch))
	assert.Contains(t, buf.String(), "dropping event")
	assert.Contains(t, buf.String(), "id=a")
}
