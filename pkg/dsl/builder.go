package dsl

import (
	"context"
	"fmt"
	"maps"

	"github.com/aretw0/docrender/pkg/adapters/memory"
	"github.com/aretw0/docrender/pkg/domain"
)

// Builder manages the document construction.
type Builder struct {
	nodes []domain.Node
	err   error
}

// New creates a new document builder.
func New() *Builder {
	return &Builder{}
}

// Add appends top-level blocks. The first error reported by a child's Err method
// is kept and returned by Err.
func (b *Builder) Add(children ...Child) *Builder {
	for _, c := range children {
		if e, ok := c.(interface{ Err() error }); ok && b.err == nil {
			b.err = e.Err()
		}
	}
	b.nodes = append(b.nodes, nodes(children)...)
	return b
}

// Err returns the first error of the children given to Add.
func (b *Builder) Err() error { return b.err }

// Build returns the document. The builder can keep being used afterwards.
func (b *Builder) Build() domain.Document {
	return append(domain.Document(nil), b.nodes...)
}

// Store saves the document under id in a new in-memory store.
// This improves DX for tests and examples.
func (b *Builder) Store(id string) (*memory.Store, error) {
	if b.err != nil {
		return nil, fmt.Errorf("failed to build document: %w", b.err)
	}
	store := memory.NewStore()
	if err := store.Save(context.Background(), &domain.Record{ID: id, Document: b.Build()}); err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}

// ComponentBuilder configures a component block.
type ComponentBuilder struct {
	block domain.ComponentBlock
	err   error
}

// Component starts a component block. props is copied.
func Component(name string, props map[string]any) *ComponentBuilder {
	cp := maps.Clone(props)
	if cp == nil {
		cp = make(map[string]any)
	}
	return &ComponentBuilder{block: domain.ComponentBlock{Component: name, Props: cp}}
}

// Prop adds a block-level child rendered into the prop at path (e.g. "items[0].body").
// A missing top-level key is created with a nil placeholder.
func (c *ComponentBuilder) Prop(path string, children ...Child) *ComponentBuilder {
	return c.prop(domain.KindComponentBlockProp, path, children)
}

// InlineProp is Prop for inline content.
func (c *ComponentBuilder) InlineProp(path string, children ...Child) *ComponentBuilder {
	return c.prop(domain.KindComponentInlineProp, path, children)
}

func (c *ComponentBuilder) prop(kind, path string, children []Child) *ComponentBuilder {
	pp, err := domain.ParsePropPath(path)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return c
	}
	if len(pp) == 1 && !pp[0].IsIndex() {
		if _, ok := c.block.Props[pp[0].Key()]; !ok {
			c.block.Props[pp[0].Key()] = nil
		}
	}
	c.block.Children = append(c.block.Children, domain.ComponentProp{
		Type:     kind,
		PropPath: pp,
		Children: nodes(children),
	})
	return c
}

// Err returns the first invalid prop path given to the builder.
func (c *ComponentBuilder) Err() error { return c.err }

// Node returns the component block. Props given an invalid path are left out of
// it; check Err, or Builder.Err once the block is added to a document.
func (c *ComponentBuilder) Node() domain.Node { return c.block }
