package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aretw0/docrender"
	"github.com/aretw0/docrender/internal/presentation/tui"
	"github.com/aretw0/docrender/pkg/codec"
	"github.com/aretw0/docrender/pkg/domain"
)

// FormatTerminal renders Markdown styled for the terminal.
const FormatTerminal = "terminal"

// RenderOptions configures RenderFile.
type RenderOptions struct {
	// Input is a document path; "-" reads JSON from Stdin.
	Input  string
	Format string
	// Components enables the built-in component blocks.
	Components bool
	// Stats appends a summary of the document to the output.
	Stats bool
	// Width is the word wrap of the terminal format.
	Width int
}

// ReadDocument decodes the document at path, choosing the codec by extension.
func ReadDocument(path string, stdin io.Reader) (domain.Document, error) {
	if path == "-" {
		return codec.Decode(codec.FormatJSON, stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := codec.Decode(codec.FormatFromPath(path), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// RenderDocument renders doc into w.
func RenderDocument(w io.Writer, doc domain.Document, opts RenderOptions, logger *slog.Logger) error {
	svc := &docrender.Service{Builtins: opts.Components, Logger: logger}

	start := time.Now()
	out, err := renderFormat(svc, opts, doc)
	if err != nil {
		return err
	}
	logger.Debug("Rendered", "format", opts.Format, "bytes", len(out), "elapsed", time.Since(start))

	if _, err := io.WriteString(w, out); err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(w)
	}
	if opts.Stats {
		fmt.Fprintln(w, Summary(doc, len(out)))
	}
	return nil
}

// RenderFile reads opts.Input and renders it into w.
func RenderFile(w io.Writer, stdin io.Reader, opts RenderOptions, logger *slog.Logger) error {
	doc, err := ReadDocument(opts.Input, stdin)
	if err != nil {
		return err
	}
	return RenderDocument(w, doc, opts, logger)
}

func renderFormat(svc *docrender.Service, opts RenderOptions, doc domain.Document) (string, error) {
	if opts.Format != FormatTerminal {
		format, err := docrender.ParseFormat(opts.Format)
		if err != nil {
			return "", err
		}
		return svc.Render(format, doc)
	}

	md, err := svc.Render(docrender.FormatMarkdown, doc)
	if err != nil {
		return "", err
	}
	style, err := tui.NewRenderer(opts.Width)
	if err != nil {
		return "", err
	}
	return style(md)
}

// Summary describes doc and the size of its rendered output in one line.
func Summary(doc domain.Document, outputBytes int) string {
	stats := domain.Count(doc)
	return fmt.Sprintf("%s nodes, %s text leaves, depth %d, %s",
		humanize.Comma(int64(stats.Nodes)),
		humanize.Comma(int64(stats.Text)),
		stats.MaxDepth,
		humanize.Bytes(uint64(outputBytes)),
	)
}
