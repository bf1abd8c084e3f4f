package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/docrender/pkg/codec"
	"github.com/aretw0/docrender/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Record
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Record),
	}
}

// NewStoreFromJSON creates a store holding the given serialized documents, keyed by ID.
// This improves DX for tests and examples.
func NewStoreFromJSON(docs map[string]string) (*Store, error) {
	s := NewStore()
	for id, raw := range docs {
		doc, err := codec.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		if err := s.Save(context.Background(), &domain.Record{ID: id, Document: doc}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, rec *domain.Record) error {
	if rec.ID == "" {
		return domain.ErrInvalidDocumentID
	}

	copied := *rec
	copied.Document = slices.Clone(rec.Document)
	if copied.Title == "" {
		copied.Title = domain.TitleOf(copied.Document)
	}
	copied.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.data[rec.ID] = copied
	s.mu.Unlock()

	rec.Title, rec.UpdatedAt = copied.Title, copied.UpdatedAt
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}

	// Copy on read so callers can't reorder the stored document
	rec.Document = slices.Clone(rec.Document)
	return &rec, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
