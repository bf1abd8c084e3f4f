// Package components provides ready-made component blocks and a registry for them.
//
// Component blocks receive their props with rendered children already spliced in,
// so a prop value is either an output node or plain data from the document.
package components

import (
	"fmt"
	"strings"

	"github.com/aretw0/docrender/pkg/output"
	"github.com/aretw0/docrender/pkg/render"
	"github.com/aretw0/docrender/pkg/schema"
)

// Builtins returns the built-in blocks keyed by component name.
func Builtins[O any]() render.ComponentBlocks[O] {
	return render.ComponentBlocks[O]{
		"notice": Notice[O](),
		"quote":  Quote[O](),
	}
}

// BuiltinSchemas returns the prop schemas of the built-in blocks.
func BuiltinSchemas() map[string]schema.Schema {
	return map[string]schema.Schema{
		"notice": {
			"intent":  schema.Optional(schema.Enum("info", "warning", "error", "success")),
			"content": schema.Optional(schema.Any()),
		},
		"quote": {
			"content":     schema.Optional(schema.Any()),
			"attribution": schema.Optional(schema.Any()),
		},
	}
}

// Notice renders a callout box. Props: "intent" (info, warning, error, success;
// defaults to info) and "content".
func Notice[O any]() render.ComponentFunc[O] {
	return func(f output.Factory[O], props map[string]any) O {
		intent, _ := props["intent"].(string)
		switch intent {
		case "info", "warning", "error", "success":
		default:
			intent = "info"
		}
		return f.Element("aside",
			[]output.Attr{{Key: "class", Val: "notice notice-" + intent}, {Key: "role", Val: "note"}},
			Value(f, props["content"]))
	}
}

// Quote renders a quotation with an optional attribution.
// Props: "content" and "attribution".
func Quote[O any]() render.ComponentFunc[O] {
	return func(f output.Factory[O], props map[string]any) O {
		children := []O{f.Element("blockquote", nil, Value(f, props["content"]))}
		if attribution := props["attribution"]; !isBlank(attribution) {
			children = append(children, f.Element("figcaption", nil, Value(f, attribution)))
		}
		return f.Element("figure", []output.Attr{{Key: "class", Val: "quote"}}, children...)
	}
}

// Value converts a prop into an output node: rendered children pass through,
// plain data becomes text and nil renders as nothing.
func Value[O any](f output.Factory[O], v any) O {
	switch val := v.(type) {
	case O:
		return val
	case nil:
		return output.Empty(f)
	case string:
		return f.Text(val)
	case []any:
		items := make([]O, len(val))
		for i, item := range val {
			items[i] = Value(f, item)
		}
		return f.Fragment(items...)
	}
	return f.Text(fmt.Sprint(v))
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}
