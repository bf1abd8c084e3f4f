// Package output defines the contract between the document renderer and a
// presentation layer.
//
// The renderer never constructs presentation nodes itself: every node it produces
// is built through a Factory supplied by the caller, so the same document can be
// projected into HTML, Markdown or any other tree representation.
package output

// Attr is an attribute of a structural wrapper element.
type Attr struct {
	Key string
	Val string
}

// Factory builds the presentation nodes of type O.
type Factory[O any] interface {
	// Element wraps children in a structural element named by tag (e.g. "strong", "p").
	Element(tag string, attrs []Attr, children ...O) O
	// Text returns a node holding a raw string payload.
	Text(s string) O
	// Fragment groups children without introducing a wrapper. A fragment with
	// no children renders as nothing.
	Fragment(children ...O) O
}

// Empty returns the node that renders as nothing.
func Empty[O any](f Factory[O]) O {
	return f.Fragment()
}

// Style builds a "style" attribute from declaration pairs, skipping empty values.
// It returns nil when every value is empty.
func Style(decls ...string) []Attr {
	var css string
	for i := 0; i+1 < len(decls); i += 2 {
		if decls[i+1] == "" {
			continue
		}
		if css != "" {
			css += ";"
		}
		css += decls[i] + ":" + decls[i+1]
	}
	if css == "" {
		return nil
	}
	return []Attr{{Key: "style", Val: css}}
}
