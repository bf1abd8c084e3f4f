package domain

// EventType defines the category of the event.
type EventType string

const (
	EventNodeRender EventType = "node_render"
	EventNodeSkip   EventType = "node_skip"
)

// SkipReason explains why a node rendered as nothing.
type SkipReason string

const (
	// SkipCodeShape: a code element did not hold exactly one text child.
	SkipCodeShape SkipReason = "code_shape"
	// SkipComponentMissing: no implementation registered for the component block.
	SkipComponentMissing SkipReason = "component_missing"
	// SkipRendererMissing: the registry slot for the kind is empty.
	SkipRendererMissing SkipReason = "renderer_missing"
)

// NodeEvent reports the outcome of rendering one node.
type NodeEvent struct {
	Type   EventType  `json:"type"`
	Kind   string     `json:"kind"`
	Depth  int        `json:"depth"`
	Reason SkipReason `json:"reason,omitempty"`
	// Component is set for component blocks.
	Component string `json:"component,omitempty"`
}

// KindText is the kind reported in events for text leaves.
const KindText = "text"

// RenderHooks defines callbacks for renderer observability.
// Hooks run synchronously inside the render call and must not retain the event.
type RenderHooks struct {
	OnNodeRender func(*NodeEvent)
	OnNodeSkip   func(*NodeEvent)
}
