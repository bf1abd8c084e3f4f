// Package codec converts documents between their serialized form and domain nodes.
//
// The serialized form is the one produced by block editors: a JSON (or YAML) array
// of nodes where text leaves carry a "text" field plus one boolean field per active
// mark, and elements carry a "type" discriminator, a "children" array and the
// attributes of their kind:
//
//	[
//	  {"type": "heading", "level": 2, "children": [{"text": "Hi", "bold": true}]},
//	  {"type": "component-block", "component": "notice", "props": {"content": null},
//	   "children": [{"type": "component-block-prop", "propPath": ["content"], "children": []}]}
//	]
//
// Unknown kinds decode to domain.Unknown with every other field preserved.
// Decoding errors report the position of the offending node, e.g. "[2].children[1]".
package codec
