package middleware

import (
	"context"
	"regexp"

	"github.com/mohae/deepcopy"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/ports"
)

// Mask replaces the values of sensitive keys.
const Mask = "***"

type piiMiddleware struct {
	ports.DocumentStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks, on save, the values of
// component props and relationship data whose keys match the patterns.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &piiMiddleware{DocumentStore: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, rec *domain.Record) error {
	// Work on a copy so the caller's document keeps its values.
	cloned := *rec
	cloned.Document = domain.Transform(rec.Document, func(n domain.Node) domain.Node {
		switch v := n.(type) {
		case domain.ComponentBlock:
			v.Props = m.mask(v.Props)
			return v
		case domain.Relationship:
			if v.Data != nil {
				data := *v.Data
				data.Data = m.mask(data.Data)
				v.Data = &data
			}
			return v
		}
		return n
	})

	if err := m.DocumentStore.Save(ctx, &cloned); err != nil {
		return err
	}
	rec.Title = cloned.Title
	rec.UpdatedAt = cloned.UpdatedAt
	return nil
}

func (m *piiMiddleware) mask(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := deepcopy.Copy(props).(map[string]any)
	maskValue(out, m.patterns)
	return out
}

func maskValue(v any, patterns []*regexp.Regexp) {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			if matchAny(k, patterns) {
				val[k] = Mask
				continue
			}
			maskValue(item, patterns)
		}
	case []any:
		for _, item := range val {
			maskValue(item, patterns)
		}
	}
}

func matchAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
