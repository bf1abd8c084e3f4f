package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docrender/internal/logging"
	"github.com/aretw0/docrender/pkg/domain"
)

const sample = `[
	{"type": "heading", "level": 2, "children": [{"text": "Notes"}]},
	{"type": "paragraph", "children": [{"text": "done", "strikethrough": true}]}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvRedisAddr, "localhost:6380")
	t.Setenv(EnvRedisDB, "3")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvStoreDir, "")
	t.Setenv(EnvMaskKeys, "email, ssn ,")

	cfg := ConfigFromEnv()
	assert.Equal(t, "localhost:6380", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.StoreKind())
	assert.Equal(t, []string{"email", "ssn"}, cfg.MaskKeys)
}

func TestConfig_StoreKind(t *testing.T) {
	assert.Equal(t, "memory", Config{}.StoreKind())
	assert.Equal(t, "loam", Config{Dir: "docs"}.StoreKind())
	assert.Equal(t, "redis", Config{Dir: "docs", RedisAddr: "x:1"}.StoreKind())
}

func TestConfig_Logger(t *testing.T) {
	_, err := Config{LogLevel: "loud"}.Logger()
	assert.Error(t, err)

	logger, err := Config{Debug: true, LogLevel: "error"}.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug), "debug wins over the level")
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := OpenStore(ctx, Config{MaskKeys: []string{"secret"}}, logger)
		require.NoError(t, err)
		defer closeFn()

		doc := domain.Document{domain.ComponentBlock{Component: "c", Props: map[string]any{"secret": "x"}}}
		require.NoError(t, store.Save(ctx, &domain.Record{ID: "a", Document: doc}))
		rec, err := store.Load(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "***", rec.Document[0].(domain.ComponentBlock).Props["secret"])
	})

	t.Run("loam", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "docs")
		store, closeFn, err := OpenStore(ctx, Config{Dir: dir}, logger)
		require.NoError(t, err)
		defer closeFn()

		doc, err := ReadDocument(writeFile(t, "a.json", sample), nil)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, &domain.Record{ID: "notes", Document: doc}))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"notes"}, ids)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, closeFn, err := OpenStore(ctx, Config{RedisAddr: mr.Addr(), RedisPrefix: "t:"}, logger)
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, store.Save(ctx, &domain.Record{ID: "x", Document: domain.Document{domain.Divider{}}}))
		assert.True(t, mr.Exists("t:doc:x"))
		assert.False(t, mr.Exists("t:lock:x"), "the write lock is released")
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, _, err := OpenStore(ctx, Config{RedisAddr: addr}, logger)
		assert.Error(t, err)
	})
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(writeFile(t, "doc.yaml", "- type: divider\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Document{domain.Divider{}}, doc)

	doc, err = ReadDocument("-", strings.NewReader(sample))
	require.NoError(t, err)
	assert.Len(t, doc, 2)

	_, err = ReadDocument(writeFile(t, "bad.json", `[{"type": 1}]`), nil)
	assert.ErrorContains(t, err, "bad.json")

	_, err = ReadDocument(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderFile(t *testing.T) {
	path := writeFile(t, "notes.json", sample)

	tests := []struct {
		format string
		want   string
	}{
		{"html", "<h2>Notes</h2><p><s>done</s></p>\n"},
		{"markdown", "## Notes\n\n~~done~~\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := RenderFile(&buf, nil, RenderOptions{Input: path, Format: tt.format}, logging.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}

	t.Run("terminal", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderFile(&buf, nil, RenderOptions{Input: path, Format: FormatTerminal, Width: 40}, logging.NewNop())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Notes")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := RenderFile(&bytes.Buffer{}, nil, RenderOptions{Input: path, Format: "pdf"}, logging.NewNop())
		assert.Error(t, err)
	})
}

func TestRenderDocument_Stats(t *testing.T) {
	var buf bytes.Buffer
	doc := domain.Document{domain.Paragraph{Children: []domain.Node{domain.Text{Text: "hi"}}}}

	err := RenderDocument(&buf, doc, RenderOptions{Format: "html", Stats: true}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>\n2 nodes, 1 text leaves, depth 1, 9 B\n", buf.String())
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "0 nodes, 0 text leaves, depth 0, 2.0 kB", Summary(nil, 2000))
}

// syncBuffer guards a buffer written by the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "live.json", `[{"type": "paragraph", "children": [{"text": "v1"}]}]`)
	out := &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, out, RenderOptions{Input: path, Format: "html"}, logging.NewNop())
	}()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "<p>v1</p>") },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`[{"type": "paragraph", "children": [{"text": "v2"}]}]`), 0o644))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "<p>v2</p>") },
		5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), ">>> Change detected in 'live.json'.")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
