package middleware

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/ports"
)

var (
	// DefaultMaxTextSize is 64KB per text leaf.
	DefaultMaxTextSize = 64 << 10
	// EnvMaxTextSize is the environment variable to override the default
	EnvMaxTextSize = "DOCRENDER_MAX_TEXT_SIZE"
)

var (
	ErrTextTooLarge = errors.New("text exceeds maximum allowed size")
	ErrInvalidUTF8  = errors.New("text contains invalid UTF-8 sequences")
)

// SanitizeText enforces the size limit, validates UTF-8 and strips control
// characters other than newline, tab and carriage return.
func SanitizeText(input string, limit int) (string, error) {
	if len(input) > limit {
		// Rejected rather than truncated so stored documents stay faithful.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTextTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxTextSize() int {
	if val := os.Getenv(EnvMaxTextSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTextSize
}

type sanitizeMiddleware struct {
	ports.DocumentStore
	limit int
}

// NewSanitizeMiddleware creates a middleware that sanitizes every text leaf with
// SanitizeText before saving. A limit of zero or less reads EnvMaxTextSize.
func NewSanitizeMiddleware(limit int) Middleware {
	if limit <= 0 {
		limit = maxTextSize()
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &sanitizeMiddleware{DocumentStore: next, limit: limit}
	}
}

func (m *sanitizeMiddleware) Save(ctx context.Context, rec *domain.Record) error {
	var firstErr error
	cloned := *rec
	cloned.Document = domain.Transform(rec.Document, func(n domain.Node) domain.Node {
		t, ok := n.(domain.Text)
		if !ok || firstErr != nil {
			return n
		}
		clean, err := SanitizeText(t.Text, m.limit)
		if err != nil {
			firstErr = err
			return n
		}
		t.Text = clean
		return t
	})
	if firstErr != nil {
		return fmt.Errorf("document %q: %w", rec.ID, firstErr)
	}

	if err := m.DocumentStore.Save(ctx, &cloned); err != nil {
		return err
	}
	rec.Title = cloned.Title
	rec.UpdatedAt = cloned.UpdatedAt
	return nil
}
