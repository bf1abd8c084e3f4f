package codec

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnsupportedFormat is returned for formats other than JSON and YAML.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Error is a decoding failure at a position of the document.
type Error struct {
	// Path locates the node, e.g. "[0].children[3]".
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "codec: " + e.Err.Error()
	}
	return fmt.Sprintf("codec: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
