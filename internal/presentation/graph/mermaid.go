package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/docrender/pkg/domain"
)

// Overlay contains render data to visualize on the outline.
type Overlay struct {
	// Available lists the component names the renderer knows. Component blocks
	// naming anything else are styled as missing.
	Available map[string]bool
}

const maxLabel = 32

// GenerateMermaid produces a Mermaid flowchart of the element structure of doc.
// Text leaves are folded into the label of their parent. It applies semantic styling:
// - Heading: ((Circle))
// - Component block: [[Subroutine]]
// - Link / Relationship: [/Parallelogram/]
// - Default: [Rectangle]
func GenerateMermaid(doc domain.Document, overlay *Overlay) string {
	var sb strings.Builder
	var missing []string
	sb.WriteString("graph TD\n")
	sb.WriteString("    doc((\"document\"))\n")

	var visit func(parent string, nodes []domain.Node)
	visit = func(parent string, nodes []domain.Node) {
		for i, n := range nodes {
			el, ok := n.(domain.Element)
			if !ok {
				continue
			}
			id := parent + "_" + strconv.Itoa(i)

			opener, closer := "[", "]"
			label := el.Kind()
			switch v := el.(type) {
			case domain.Heading:
				opener, closer = "((", "))"
				label = fmt.Sprintf("h%d: %s", v.Level, truncate(domain.PlainText(v.Children...)))
			case domain.Paragraph:
				label = "paragraph: " + truncate(domain.PlainText(v.Children...))
			case domain.ComponentBlock:
				opener, closer = "[[", "]]"
				label = "component: " + v.Component
				if overlay != nil && !overlay.Available[v.Component] {
					missing = append(missing, id)
				}
			case domain.ComponentProp:
				label = el.Kind() + ": " + v.PropPath.String()
			case domain.Link:
				opener, closer = "[/", "/]"
				label = "link: " + v.Href
			case domain.Relationship:
				opener, closer = "[/", "/]"
				label = "relationship: " + v.Relationship
			}

			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(label), closer)
			fmt.Fprintf(&sb, "    %s --> %s\n", parent, id)

			switch el.(type) {
			case domain.Paragraph, domain.Heading:
				// inline content is summarized in the label
			default:
				visit(id, el.ChildNodes())
			}
		}
	}
	visit("doc", doc)

	if overlay != nil && len(missing) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef missing fill:#fee2e2,stroke:#b91c1c,stroke-width:2px,color:#000;\n")
		for _, id := range missing {
			fmt.Fprintf(&sb, "    class %s missing;\n", id)
		}
	}

	return sb.String()
}

func truncate(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= maxLabel {
		return string(r)
	}
	return string(r[:maxLabel-1]) + "…"
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
