package ports

import (
	"context"

	"github.com/aretw0/docrender/pkg/domain"
)

// DocumentStore persists documents by ID.
type DocumentStore interface {
	// Save creates or replaces the record. Implementations set UpdatedAt and,
	// when it is empty, derive Title from the document; both are written back to rec.
	Save(ctx context.Context, rec *domain.Record) error

	// Load retrieves the record for id.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, id string) (*domain.Record, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored documents in ascending order.
	List(ctx context.Context) ([]string, error)
}
