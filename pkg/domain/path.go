package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a PropPath: either a mapping key or a sequence index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a segment addressing a mapping entry.
func Key(k string) Segment { return Segment{key: k} }

// Index returns a segment addressing a sequence element.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether the segment is numeric.
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the mapping key. Numeric segments yield their decimal form,
// which is how a mapping addressed by a number is keyed.
func (s Segment) Key() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Index returns the sequence index. String segments are accepted when they hold
// a decimal integer.
func (s Segment) Index() (int, bool) {
	if s.isIndex {
		return s.index, true
	}
	i, err := strconv.Atoi(s.key)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// PropPath locates a position inside a component block's props.
type PropPath []Segment

// NewPropPath builds a path from raw segments as found in decoded documents:
// strings become keys and integral numbers become indexes.
func NewPropPath(raw ...any) (PropPath, error) {
	path := make(PropPath, 0, len(raw))
	for i, r := range raw {
		switch v := r.(type) {
		case string:
			path = append(path, Key(v))
		case int:
			path = append(path, Index(v))
		case int64:
			path = append(path, Index(int(v)))
		case float64:
			if v != float64(int(v)) {
				return nil, fmt.Errorf("segment %d: expected integer index, got %v", i, v)
			}
			path = append(path, Index(int(v)))
		default:
			return nil, fmt.Errorf("segment %d: expected string or number, got %T", i, r)
		}
	}
	return path, nil
}

// String renders the path in accessor form, e.g. "items[0].content".
func (p PropPath) String() string {
	var sb strings.Builder
	for i, s := range p {
		if !s.isIndex && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// ParsePropPath parses the accessor form printed by PropPath.String.
// Bracketed numbers are indexes; dot separated names are keys.
func ParsePropPath(s string) (PropPath, error) {
	var path PropPath
	for i := 0; i < len(s); {
		switch s[i] {
		case '.':
			if i == 0 || i == len(s)-1 || s[i+1] == '.' || s[i+1] == '[' {
				return nil, fmt.Errorf("prop path %q: empty key at offset %d", s, i)
			}
			i++
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("prop path %q: unclosed index at offset %d", s, i)
			}
			idx, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("prop path %q: bad index %q", s, s[i+1:i+end])
			}
			path = append(path, Index(idx))
			i += end + 1
		default:
			end := strings.IndexAny(s[i:], ".[")
			if end < 0 {
				end = len(s) - i
			}
			path = append(path, Key(s[i:i+end]))
			i += end
		}
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("prop path is empty")
	}
	return path, nil
}
