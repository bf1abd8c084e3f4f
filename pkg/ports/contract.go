package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractDocument is the document saved by RunDocumentStoreContract. It survives
// a JSON round trip unchanged.
func ContractDocument() domain.Document {
	return domain.Document{
		domain.Heading{Level: 1, Children: []domain.Node{domain.Text{Text: "Contract"}}},
		domain.Paragraph{TextAlign: domain.AlignCenter, Children: []domain.Node{
			domain.Text{Text: "bold", Marks: domain.Marks(domain.MarkBold)},
			domain.Link{Href: "/x", Children: []domain.Node{domain.Text{Text: "link"}}},
		}},
		domain.ComponentBlock{
			Component: "notice",
			Props:     map[string]any{"intent": "info", "content": nil},
			Children: []domain.Node{
				domain.ComponentProp{
					Type:     domain.KindComponentBlockProp,
					PropPath: domain.PropPath{domain.Key("content")},
					Children: []domain.Node{domain.Paragraph{Children: []domain.Node{domain.Text{Text: "body"}}}},
				},
			},
		},
	}
}

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := &domain.Record{ID: id, Document: ContractDocument()}
		err := store.Save(ctx, rec)
		require.NoError(t, err, "Save should not return error")
		assert.Equal(t, "Contract", rec.Title, "Save should write the title back")
		assert.False(t, rec.UpdatedAt.IsZero(), "Save should write UpdatedAt back")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, id, loaded.ID)
		assert.Equal(t, "Contract", loaded.Title, "Title should default to the first heading")
		assert.Equal(t, ContractDocument(), loaded.Document)
		assert.False(t, loaded.UpdatedAt.IsZero())
	})

	t.Run("Save keeps explicit title", func(t *testing.T) {
		err := store.Save(ctx, &domain.Record{ID: id, Title: "Custom", Document: ContractDocument()})
		require.NoError(t, err)

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Custom", loaded.Title)
	})

	t.Run("Save rejects empty id", func(t *testing.T) {
		err := store.Save(ctx, &domain.Record{Document: ContractDocument()})
		assert.ErrorIs(t, err, domain.ErrInvalidDocumentID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.Record{ID: id, Document: ContractDocument()}))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Delete of a missing document should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-a"
		id2 := id + "-b"
		require.NoError(t, store.Save(ctx, &domain.Record{ID: id2, Document: ContractDocument()}))
		require.NoError(t, store.Save(ctx, &domain.Record{ID: id1, Document: ContractDocument()}))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsNonDecreasing(t, ids)
	})
}
