package render

import (
	"strings"

	"github.com/aretw0/docrender/pkg/output"
)

// ComponentBlock is an externally implemented component embedded in documents.
// props is a private copy of the node's props with rendered children spliced in.
type ComponentBlock[O any] interface {
	Render(f output.Factory[O], props map[string]any) O
}

// ComponentFunc adapts a function to ComponentBlock.
type ComponentFunc[O any] func(f output.Factory[O], props map[string]any) O

func (fn ComponentFunc[O]) Render(f output.Factory[O], props map[string]any) O {
	return fn(f, props)
}

// ComponentBlocks maps component names, matched exactly, to implementations.
type ComponentBlocks[O any] map[string]ComponentBlock[O]

const componentWrapperClass = "wrapper-component-block"

// ComponentClassName returns the class of the block wrapped around a component:
// a constant base class plus one derived from the lowercased component name.
func ComponentClassName(component string) string {
	return componentWrapperClass + " " + componentWrapperClass + "-" + strings.ToLower(component)
}
