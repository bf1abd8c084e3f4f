package domain

// Transform returns a copy of nodes where every node has been replaced by fn,
// children first. fn receives elements whose children are already transformed.
// The input is not modified; maps inside nodes are shared unless fn copies them.
func Transform(nodes []Node, fn func(Node) Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if el, ok := n.(Element); ok {
			n = WithChildren(el, Transform(el.ChildNodes(), fn))
		}
		if n != nil {
			n = fn(n)
		}
		out[i] = n
	}
	return out
}

// WithChildren returns a copy of el holding children.
func WithChildren(el Element, children []Node) Element {
	switch v := el.(type) {
	case Paragraph:
		v.Children = children
		return v
	case Heading:
		v.Children = children
		return v
	case Blockquote:
		v.Children = children
		return v
	case Code:
		v.Children = children
		return v
	case Layout:
		v.Children = children
		return v
	case Divider:
		v.Children = children
		return v
	case List:
		v.Children = children
		return v
	case Link:
		v.Children = children
		return v
	case Relationship:
		v.Children = children
		return v
	case ComponentBlock:
		v.Children = children
		return v
	case ComponentProp:
		v.Children = children
		return v
	case Unknown:
		v.Children = children
		return v
	}
	return el
}
