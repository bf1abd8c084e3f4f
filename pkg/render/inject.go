package render

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/aretw0/docrender/pkg/domain"
	"github.com/mohae/deepcopy"
)

// ErrInvalidPropPath is wrapped by errors about prop paths that do not address a
// position inside the component block's props.
var ErrInvalidPropPath = errors.New("invalid prop path")

// InjectError reports the child whose prop path could not be applied.
type InjectError struct {
	Child int
	Path  domain.PropPath
	// Depth is the number of segments resolved before the failure.
	Depth  int
	Reason string
}

func (e *InjectError) Error() string {
	return fmt.Sprintf("%s: child %d at %q (segment %d): %s", ErrInvalidPropPath, e.Child, e.Path, e.Depth, e.Reason)
}

func (e *InjectError) Unwrap() error { return ErrInvalidPropPath }

// InjectChildren returns a deep copy of props in which rendered[i] is stored at the
// prop path of children[i], for every child that carries one.
// Children without a prop path are skipped. props is never modified.
func InjectChildren[O any](props map[string]any, children []domain.Node, rendered []O) (map[string]any, error) {
	clone, _ := deepcopy.Copy(props).(map[string]any)
	if clone == nil {
		clone = make(map[string]any)
	}

	for i, child := range children {
		path, ok, perr := domain.PropPathOf(child)
		if perr != nil {
			return nil, &InjectError{Child: i, Path: path, Reason: perr.Error()}
		}
		if !ok {
			continue
		}
		if i >= len(rendered) {
			return nil, &InjectError{Child: i, Path: path, Reason: "no rendered output for child"}
		}
		if err := setPath(clone, path, rendered[i]); err != nil {
			err.Child = i
			return nil, err
		}
	}
	return clone, nil
}

// setPath walks path inside root and stores value at its last segment.
// An index equal to the length of a sequence on the last segment appends.
func setPath(root map[string]any, path domain.PropPath, value any) *InjectError {
	if len(path) == 0 {
		return &InjectError{Path: path, Reason: "empty path"}
	}
	_, err := assign(root, path, 0, value)
	return err
}

// assign stores value at path[depth:] below container and returns the container,
// which differs from the argument when a sequence grew.
func assign(container any, path domain.PropPath, depth int, value any) (any, *InjectError) {
	seg := path[depth]
	last := depth == len(path)-1
	fail := func(format string, args ...any) (any, *InjectError) {
		return nil, &InjectError{Path: path, Depth: depth, Reason: fmt.Sprintf(format, args...)}
	}

	switch c := container.(type) {
	case map[string]any:
		if last {
			c[seg.Key()] = value
			return c, nil
		}
		child, err := assign(c[seg.Key()], path, depth+1, value)
		if err != nil {
			return nil, err
		}
		c[seg.Key()] = child
		return c, nil

	case []any:
		idx, ok := seg.Index()
		if !ok {
			return fail("segment %q is not an index", seg.Key())
		}
		if last && idx == len(c) {
			return append(c, value), nil
		}
		if idx < 0 || idx >= len(c) {
			return fail("index %d out of range [0:%d]", idx, len(c))
		}
		if last {
			c[idx] = value
			return c, nil
		}
		child, err := assign(c[idx], path, depth+1, value)
		if err != nil {
			return nil, err
		}
		c[idx] = child
		return c, nil
	}

	return assignReflect(container, path, depth, value)
}

// assignReflect handles typed slices and maps with string keys.
func assignReflect(container any, path domain.PropPath, depth int, value any) (any, *InjectError) {
	seg := path[depth]
	last := depth == len(path)-1
	fail := func(format string, args ...any) (any, *InjectError) {
		return nil, &InjectError{Path: path, Depth: depth, Reason: fmt.Sprintf(format, args...)}
	}

	rv := reflect.ValueOf(container)
	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		if rv.IsNil() {
			return fail("%T is nil", container)
		}
		key := reflect.ValueOf(seg.Key()).Convert(rv.Type().Key())
		elem := rv.Type().Elem()
		if !last {
			var current any
			if v := rv.MapIndex(key); v.IsValid() {
				current = v.Interface()
			}
			child, err := assign(current, path, depth+1, value)
			if err != nil {
				return nil, err
			}
			value = child
		}
		v, ok := valueFor(value, elem)
		if !ok {
			return fail("%s cannot hold %T", rv.Type(), value)
		}
		rv.SetMapIndex(key, v)
		return container, nil

	case rv.Kind() == reflect.Slice:
		idx, ok := seg.Index()
		if !ok {
			return fail("segment %q is not an index", seg.Key())
		}
		elem := rv.Type().Elem()
		if last && idx == rv.Len() {
			v, ok := valueFor(value, elem)
			if !ok {
				return fail("%s cannot hold %T", rv.Type(), value)
			}
			return reflect.Append(rv, v).Interface(), nil
		}
		if idx < 0 || idx >= rv.Len() {
			return fail("index %d out of range [0:%d]", idx, rv.Len())
		}
		if !last {
			child, err := assign(rv.Index(idx).Interface(), path, depth+1, value)
			if err != nil {
				return nil, err
			}
			value = child
		}
		v, ok := valueFor(value, elem)
		if !ok {
			return fail("%s cannot hold %T", rv.Type(), value)
		}
		rv.Index(idx).Set(v)
		return container, nil
	}

	return fail("%T is not a container", container)
}

// valueFor converts value for storage in a container whose elements are typ.
// nil stores the zero value.
func valueFor(value any, typ reflect.Type) (reflect.Value, bool) {
	if value == nil {
		return reflect.Zero(typ), true
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(typ) {
		return reflect.Value{}, false
	}
	return v, true
}
