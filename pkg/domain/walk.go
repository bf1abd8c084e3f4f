package domain

import "strings"

// Walk visits nodes depth first, parents before children. fn receives the depth
// of the node (0 for the given nodes) and returns false to skip its children.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !fn(n, depth) {
			continue
		}
		if el, ok := n.(Element); ok {
			walk(el.ChildNodes(), depth+1, fn)
		}
	}
}

// PlainText concatenates the text leaves below nodes, ignoring marks.
func PlainText(nodes ...Node) string {
	var sb strings.Builder
	Walk(nodes, func(n Node, _ int) bool {
		if t, ok := n.(Text); ok {
			sb.WriteString(t.Text)
		}
		return true
	})
	return sb.String()
}

// Stats counts the nodes of a document.
type Stats struct {
	Nodes    int            `json:"nodes"`
	Text     int            `json:"text"`
	MaxDepth int            `json:"max_depth"`
	Kinds    map[string]int `json:"kinds"`
}

// Count walks doc and returns its Stats.
func Count(doc Document) Stats {
	s := Stats{Kinds: make(map[string]int)}
	Walk(doc, func(n Node, depth int) bool {
		s.Nodes++
		s.MaxDepth = max(s.MaxDepth, depth)
		switch v := n.(type) {
		case Text:
			s.Text++
		case Element:
			s.Kinds[v.Kind()]++
		}
		return true
	})
	return s
}
