package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/docrender/pkg/domain"
)

// Format is a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode reads a document in the given format.
func Decode(format Format, r io.Reader) (domain.Document, error) {
	switch format {
	case FormatJSON, "":
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// DecodeJSON reads a JSON document.
func DecodeJSON(r io.Reader) (domain.Document, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &Error{Err: err}
	}
	return FromValue(raw)
}

// DecodeString reads a JSON document from s.
func DecodeString(s string) (domain.Document, error) {
	return DecodeJSON(strings.NewReader(s))
}

// DecodeYAML reads a YAML document.
func DecodeYAML(r io.Reader) (domain.Document, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &Error{Err: err}
	}
	return FromValue(raw)
}

// FromValue converts generic decoded data ([]any of map[string]any) into a document.
func FromValue(v any) (domain.Document, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, &Error{Err: fmt.Errorf("document must be an array of nodes, got %T", v)}
	}
	nodes, err := decodeNodes(items, "")
	if err != nil {
		return nil, err
	}
	return domain.Document(nodes), nil
}

func decodeNodes(items []any, path string) ([]domain.Node, error) {
	nodes := make([]domain.Node, 0, len(items))
	for i, item := range items {
		n, err := decodeNode(item, index(path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeNode(v any, path string) (domain.Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &Error{Path: path, Err: fmt.Errorf("node must be an object, got %T", v)}
	}

	typ, hasType := m[domain.KeyType]
	if !hasType {
		if _, isText := m[domain.KeyText]; isText {
			return decodeText(m, path)
		}
		return nil, &Error{Path: path, Err: fmt.Errorf("node has neither %q nor %q", domain.KeyType, domain.KeyText)}
	}
	kind, ok := typ.(string)
	if !ok {
		return nil, &Error{Path: path, Err: fmt.Errorf("%q must be a string, got %T", domain.KeyType, typ)}
	}

	children, err := decodeChildren(m, path)
	if err != nil {
		return nil, err
	}
	return decodeElement(kind, m, children, path)
}

func decodeText(m map[string]any, path string) (domain.Node, error) {
	text, ok := m[domain.KeyText].(string)
	if !ok {
		return nil, &Error{Path: path, Err: fmt.Errorf("%q must be a string", domain.KeyText)}
	}
	var marks domain.MarkSet
	for key, val := range m {
		mark, ok := domain.ParseMark(key)
		if !ok {
			continue
		}
		if on, _ := val.(bool); on {
			marks = marks.With(mark)
		}
	}
	return domain.Text{Text: text, Marks: marks}, nil
}

func decodeChildren(m map[string]any, path string) ([]domain.Node, error) {
	raw, ok := m[domain.KeyChildren]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &Error{Path: path, Err: fmt.Errorf("%q must be an array, got %T", domain.KeyChildren, raw)}
	}
	return decodeNodes(items, path+"."+domain.KeyChildren)
}

type elementAttrs struct {
	TextAlign    string                   `mapstructure:"textAlign"`
	Level        int                      `mapstructure:"level"`
	Layout       []float64                `mapstructure:"layout"`
	Href         string                   `mapstructure:"href"`
	Relationship string                   `mapstructure:"relationship"`
	Data         *domain.RelationshipData `mapstructure:"data"`
	Component    string                   `mapstructure:"component"`
	Props        map[string]any           `mapstructure:"props"`
	PropPath     []any                    `mapstructure:"propPath"`
}

func decodeAttrs(m map[string]any, path string) (elementAttrs, error) {
	var attrs elementAttrs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &attrs,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return attrs, &Error{Path: path, Err: err}
	}
	if err := dec.Decode(m); err != nil {
		return attrs, &Error{Path: path, Err: err}
	}
	return attrs, nil
}

func decodeElement(kind string, m map[string]any, children []domain.Node, path string) (domain.Node, error) {
	switch kind {
	case domain.KindListItem, domain.KindListItemContent, domain.KindLayoutArea:
		// structural kinds without attributes keep the generic shape
		return domain.Unknown{Type: kind, Attrs: extraAttrs(m), Children: children}, nil
	case domain.KindBlockquote:
		return domain.Blockquote{Children: children}, nil
	case domain.KindCode:
		return domain.Code{Children: children}, nil
	case domain.KindDivider:
		return domain.Divider{Children: children}, nil
	case domain.KindOrderedList, domain.KindUnorderedList:
		return domain.List{Ordered: kind == domain.KindOrderedList, Children: children}, nil
	}

	known := kind == domain.KindParagraph || kind == domain.KindHeading || kind == domain.KindLayout ||
		kind == domain.KindLink || kind == domain.KindRelationship || kind == domain.KindComponentBlock ||
		kind == domain.KindComponentBlockProp || kind == domain.KindComponentInlineProp
	if !known {
		return domain.Unknown{Type: kind, Attrs: extraAttrs(m), Children: children}, nil
	}

	attrs, err := decodeAttrs(m, path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindParagraph:
		return domain.Paragraph{TextAlign: domain.Align(attrs.TextAlign), Children: children}, nil
	case domain.KindHeading:
		return domain.Heading{Level: attrs.Level, TextAlign: domain.Align(attrs.TextAlign), Children: children}, nil
	case domain.KindLayout:
		return domain.Layout{Layout: attrs.Layout, Children: children}, nil
	case domain.KindLink:
		return domain.Link{Href: attrs.Href, Children: children}, nil
	case domain.KindRelationship:
		return domain.Relationship{Relationship: attrs.Relationship, Data: attrs.Data, Children: children}, nil
	case domain.KindComponentBlock:
		return domain.ComponentBlock{Component: attrs.Component, Props: attrs.Props, Children: children}, nil
	default:
		var propPath domain.PropPath
		if attrs.PropPath != nil {
			if propPath, err = domain.NewPropPath(attrs.PropPath...); err != nil {
				return nil, &Error{Path: path + "." + domain.KeyPropPath, Err: err}
			}
		}
		return domain.ComponentProp{Type: kind, PropPath: propPath, Children: children}, nil
	}
}

// extraAttrs copies every field except the discriminator and the children.
func extraAttrs(m map[string]any) map[string]any {
	attrs := make(map[string]any, len(m))
	for k, v := range m {
		if k == domain.KeyType || k == domain.KeyChildren {
			continue
		}
		attrs[k] = v
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
