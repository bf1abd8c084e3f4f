package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/aretw0/docrender/pkg/render"
	"github.com/aretw0/docrender/pkg/schema"
)

// Options tunes the checks of ValidateDocument.
type Options struct {
	// Components lists the component names that have an implementation.
	// A nil map disables the missing component check.
	Components map[string]bool
	// Schemas holds the prop schemas checked against component block props.
	Schemas map[string]schema.Schema
}

// Issue is one problem found in a document.
type Issue struct {
	// Path locates the node, e.g. "[2].children[0]".
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Inspect returns the problems of doc that make a node render differently from
// what its author likely meant: nothing at all, or an error.
func Inspect(doc domain.Document, opts Options) []Issue {
	var issues []Issue
	var visit func(nodes []domain.Node, path string)
	visit = func(nodes []domain.Node, path string) {
		for i, n := range nodes {
			p := path + "[" + strconv.Itoa(i) + "]"
			el, ok := n.(domain.Element)
			if !ok {
				continue
			}
			report := func(format string, args ...any) {
				issues = append(issues, Issue{Path: p, Message: fmt.Sprintf(format, args...)})
			}

			switch v := el.(type) {
			case domain.Heading:
				if v.Level < 1 || v.Level > 6 {
					report("heading level %d is outside 1-6", v.Level)
				}
			case domain.Code:
				if len(v.Children) != 1 {
					report("code holds %d children, expected one text", len(v.Children))
				} else if _, isText := v.Children[0].(domain.Text); !isText {
					report("code child is not text")
				}
			case domain.Link:
				if strings.TrimSpace(v.Href) == "" {
					report("link has no href")
				}
			case domain.Layout:
				for _, f := range v.Layout {
					if f <= 0 {
						report("layout fraction %v is not positive", f)
						break
					}
				}
			case domain.ComponentBlock:
				if opts.Components != nil && !opts.Components[v.Component] {
					report("component %q has no implementation", v.Component)
				}
				if s, ok := opts.Schemas[v.Component]; ok {
					for _, err := range schema.ValidationErrors(schema.Validate(s, v.Props)) {
						report("component %q: %v", v.Component, err)
					}
				}
				if _, err := render.InjectChildren(v.Props, v.Children, make([]any, len(v.Children))); err != nil {
					report("%v", err)
				}
			case domain.Unknown:
				switch v.Type {
				case domain.KindListItem, domain.KindListItemContent, domain.KindLayoutArea:
				default:
					report("unknown element kind %q", v.Type)
				}
			}
			visit(el.ChildNodes(), p+".children")
		}
	}
	visit(doc, "")
	return issues
}

// ValidateDocument returns an error listing every issue Inspect finds, or nil.
func ValidateDocument(doc domain.Document, opts Options) error {
	issues := Inspect(doc, opts)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(issues), strings.Join(lines, "\n- "))
}
