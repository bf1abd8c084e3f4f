package docrender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/aretw0/docrender/pkg/components"
	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/observability"
	"github.com/aretw0/docrender/pkg/output/tree"
)

// Format names a string output of the Service.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	// FormatTree is the tree output serialized as indented JSON.
	FormatTree Format = "tree"
)

// Formats lists the supported formats.
var Formats = []Format{FormatHTML, FormatMarkdown, FormatTree}

// ErrUnknownFormat is returned for format names outside Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a format name. The empty string selects HTML and "md"
// is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "tree", "json":
		return FormatTree, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Service renders documents into strings for the outer adapters (CLI, HTTP, MCP).
// The zero value renders with the default renderers and no components.
type Service struct {
	// Builtins enables the component blocks of the components package.
	Builtins bool
	Hooks    domain.RenderHooks
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Render renders doc in format.
func (s *Service) Render(format Format, doc domain.Document) (string, error) {
	start := time.Now()
	out, err := s.render(format, doc)
	if s.Metrics != nil {
		s.Metrics.ObserveDocument(string(format), time.Since(start), err)
	}
	return out, err
}

func (s *Service) render(format Format, doc domain.Document) (string, error) {
	hooks := s.Hooks
	if s.Metrics != nil {
		hooks = observability.Chain(hooks, s.Metrics.Hooks())
	}

	switch format {
	case FormatHTML:
		opts := []Option[*html.Node]{WithHooks[*html.Node](hooks), WithLogger[*html.Node](s.Logger)}
		if s.Builtins {
			opts = append(opts, WithComponentBlocks(components.Builtins[*html.Node]()))
		}
		return RenderHTML(doc, opts...)
	case FormatMarkdown, FormatTree:
		opts := []Option[*tree.Node]{WithHooks[*tree.Node](hooks), WithLogger[*tree.Node](s.Logger)}
		if s.Builtins {
			opts = append(opts, WithComponentBlocks(components.Builtins[*tree.Node]()))
		}
		if format == FormatMarkdown {
			return RenderMarkdown(doc, opts...)
		}
		nodes, err := RenderTree(doc, opts...)
		if err != nil {
			return "", err
		}
		b, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode tree: %w", err)
		}
		return string(b), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
