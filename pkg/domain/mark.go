package domain

import "strings"

// Mark is an inline formatting flag attached to a Text node.
type Mark string

const (
	MarkBold          Mark = "bold"
	MarkItalic        Mark = "italic"
	MarkUnderline     Mark = "underline"
	MarkStrikethrough Mark = "strikethrough"
	MarkCode          Mark = "code"
	MarkSuperscript   Mark = "superscript"
	MarkSubscript     Mark = "subscript"
	MarkKeyboard      Mark = "keyboard"
)

// MarkOrder is the declaration order of the marks in the inline renderer registry.
// Marks nest in this order: the first active mark is the innermost wrapper.
var MarkOrder = [...]Mark{
	MarkBold,
	MarkCode,
	MarkKeyboard,
	MarkStrikethrough,
	MarkItalic,
	MarkSubscript,
	MarkSuperscript,
	MarkUnderline,
}

// ParseMark returns the mark named s. The second result is false for unknown names.
func ParseMark(s string) (Mark, bool) {
	for _, m := range MarkOrder {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

func (m Mark) bit() MarkSet {
	for i, candidate := range MarkOrder {
		if candidate == m {
			return 1 << i
		}
	}
	return 0
}

// MarkSet is the set of marks active on a Text node.
// The zero value is the empty set.
type MarkSet uint8

// Marks builds a set from the given marks.
func Marks(marks ...Mark) MarkSet {
	var s MarkSet
	for _, m := range marks {
		s |= m.bit()
	}
	return s
}

// Has reports whether m is in the set.
func (s MarkSet) Has(m Mark) bool {
	b := m.bit()
	return b != 0 && s&b != 0
}

// With returns a copy of the set with m added.
func (s MarkSet) With(m Mark) MarkSet {
	return s | m.bit()
}

// Without returns a copy of the set with m removed.
func (s MarkSet) Without(m Mark) MarkSet {
	return s &^ m.bit()
}

// List returns the active marks in MarkOrder.
func (s MarkSet) List() []Mark {
	var out []Mark
	for _, m := range MarkOrder {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s MarkSet) String() string {
	marks := s.List()
	names := make([]string, len(marks))
	for i, m := range marks {
		names[i] = string(m)
	}
	return "{" + strings.Join(names, ",") + "}"
}
