// Package loam stores documents as files in a Loam repository.
//
// Each document is a Markdown file whose frontmatter holds DocumentMeta and whose
// body is the document in its JSON form, so repositories stay readable and
// diffable in version control.
package loam

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/loam"

	"github.com/aretw0/docrender/pkg/codec"
	"github.com/aretw0/docrender/pkg/domain"
)

// extensions are the file kinds Loam resolves an ID to.
var extensions = []string{".md", ".json", ".yaml", ".yml"}

// Store adapts a Loam repository to ports.DocumentStore.
type Store struct {
	Repo *loam.TypedRepository[DocumentMeta]
	dir  string
}

// New creates a store over the repository rooted at dir.
func New(repo *loam.TypedRepository[DocumentMeta], dir string) *Store {
	return &Store{Repo: repo, dir: dir}
}

// Open initializes a Loam repository at dir and returns a store over it.
func Open(dir string, opts ...loam.Option) (*Store, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[DocumentMeta](repo), absPath), nil
}

// Save writes the record as <id>.md.
func (s *Store) Save(ctx context.Context, rec *domain.Record) error {
	if rec.ID == "" || strings.ContainsAny(rec.ID, `\`) || strings.Contains(rec.ID, "..") {
		return domain.ErrInvalidDocumentID
	}

	body, err := codec.EncodeString(rec.Document)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", rec.ID, err)
	}

	title := rec.Title
	if title == "" {
		title = domain.TitleOf(rec.Document)
	}

	now := time.Now().UTC()
	err = s.Repo.Save(ctx, &loam.DocumentModel[DocumentMeta]{
		ID:      rec.ID,
		Content: body,
		Data: DocumentMeta{
			ID:        rec.ID,
			Title:     title,
			UpdatedAt: now.Format(time.RFC3339Nano),
		},
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", rec.ID, err)
	}
	rec.Title, rec.UpdatedAt = title, now
	return nil
}

// Load reads the record for id.
func (s *Store) Load(ctx context.Context, id string) (*domain.Record, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		// Loam reports missing files with its own errors; confirm absence on disk.
		if !s.exists(id) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	parsed, err := codec.DecodeString(strings.TrimSpace(doc.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}

	rec := &domain.Record{
		ID:       id,
		Title:    doc.Data.Title,
		Document: parsed,
	}
	if doc.Data.UpdatedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, doc.Data.UpdatedAt); err == nil {
			rec.UpdatedAt = ts
		}
	}
	return rec, nil
}

// Delete removes the file backing id.
func (s *Store) Delete(ctx context.Context, id string) error {
	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(id)+ext))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete document %s: %w", id, err)
		}
	}
	return nil
}

// List returns the IDs of all documents, with extensions stripped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) exists(id string) bool {
	for _, ext := range extensions {
		if _, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(id)+ext)); err == nil {
			return true
		}
	}
	return false
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if slices.Contains(extensions, ext) {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
