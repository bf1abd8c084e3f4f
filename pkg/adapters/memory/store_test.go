package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/docrender/pkg/adapters/memory"
	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunDocumentStoreContract(t, store)
}

func TestNewStoreFromJSON(t *testing.T) {
	store, err := memory.NewStoreFromJSON(map[string]string{
		"intro": `[{"type": "heading", "level": 1, "children": [{"text": "Intro"}]}]`,
		"empty": `[]`,
	})
	require.NoError(t, err)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"empty", "intro"}, ids)

	rec, err := store.Load(context.Background(), "intro")
	require.NoError(t, err)
	assert.Equal(t, "Intro", rec.Title)
}

func TestNewStoreFromJSON_Invalid(t *testing.T) {
	_, err := memory.NewStoreFromJSON(map[string]string{"bad": `{}`})
	assert.Error(t, err)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, &domain.Record{ID: "a", Document: domain.Document{domain.Divider{}}}))

	rec, err := store.Load(ctx, "a")
	require.NoError(t, err)
	rec.Document[0] = domain.Paragraph{}

	again, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.Document{domain.Divider{}}, again.Document)
}
