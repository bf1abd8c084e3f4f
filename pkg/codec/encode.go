package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/docrender/pkg/domain"
)

// ToValue converts a document into generic data, the inverse of FromValue.
func ToValue(doc domain.Document) []any {
	return encodeNodes(doc)
}

// Encode writes doc in the given format.
func Encode(format Format, w io.Writer, doc domain.Document) error {
	switch format {
	case FormatJSON, "":
		return json.NewEncoder(w).Encode(ToValue(doc))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ToValue(doc)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// EncodeString returns doc as a JSON string.
func EncodeString(doc domain.Document) (string, error) {
	var sb strings.Builder
	if err := Encode(FormatJSON, &sb, doc); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func encodeNodes(nodes []domain.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, encodeNode(n))
	}
	return out
}

func encodeNode(n domain.Node) map[string]any {
	if t, ok := n.(domain.Text); ok {
		m := map[string]any{domain.KeyText: t.Text}
		for _, mark := range t.Marks.List() {
			m[string(mark)] = true
		}
		return m
	}

	el := n.(domain.Element)
	m := map[string]any{
		domain.KeyType:     el.Kind(),
		domain.KeyChildren: encodeNodes(el.ChildNodes()),
	}

	switch v := el.(type) {
	case domain.Paragraph:
		setAlign(m, v.TextAlign)
	case domain.Heading:
		m["level"] = v.Level
		setAlign(m, v.TextAlign)
	case domain.Layout:
		m["layout"] = v.Layout
	case domain.Link:
		m["href"] = v.Href
	case domain.Relationship:
		m["relationship"] = v.Relationship
		if v.Data != nil {
			data := map[string]any{"id": v.Data.ID}
			if v.Data.Label != "" {
				data["label"] = v.Data.Label
			}
			if v.Data.Data != nil {
				data["data"] = v.Data.Data
			}
			m["data"] = data
		} else {
			m["data"] = nil
		}
	case domain.ComponentBlock:
		m["component"] = v.Component
		m["props"] = v.Props
	case domain.ComponentProp:
		if v.PropPath != nil {
			raw := make([]any, len(v.PropPath))
			for i, seg := range v.PropPath {
				if idx, ok := seg.Index(); ok && seg.IsIndex() {
					raw[i] = idx
				} else {
					raw[i] = seg.Key()
				}
			}
			m[domain.KeyPropPath] = raw
		}
	case domain.Unknown:
		for k, val := range v.Attrs {
			m[k] = val
		}
	}
	return m
}

func setAlign(m map[string]any, a domain.Align) {
	if a != domain.AlignStart {
		m["textAlign"] = string(a)
	}
}
