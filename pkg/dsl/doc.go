/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing documents.

It allows developers to write rich-text documents using a type-safe, fluent builder pattern
instead of hand-writing the editor's JSON. This is particularly useful for generated content,
unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/docrender/pkg/dsl"
	)

	func main() {
		doc := dsl.New().
			Add(dsl.H(1, dsl.T("Release notes"))).
			Add(dsl.P(dsl.T("Rendering is "), dsl.T("faster").Bold(), dsl.T(" now."))).
			Add(dsl.Component("notice", map[string]any{"intent": "info"}).
				Prop("content", dsl.P(dsl.T("Upgrade soon.")))).
			Build()

		// doc is a domain.Document ready for render.Document or docrender.Engine.Render
	}
*/
package dsl
