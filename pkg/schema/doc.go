// Package schema describes the props a component block expects.
//
// A Schema maps top-level prop names to a Type. Built-in types cover strings,
// numbers, booleans, slices, string enums and "any" for content slots, whose
// document value is only a placeholder for rendered children:
//
//	notice := schema.Schema{
//	    "intent":  schema.Optional(schema.Enum("info", "warning", "error", "success")),
//	    "content": schema.Optional(schema.Any()),
//	}
//
//	if err := schema.Validate(notice, block.Props); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Schemas serialize to a map of type names, so hosts can publish them or
// declare them in configuration:
//
//	s, err := schema.ParseTypeMap(map[string]string{
//	    "intent":  "info|warning|error|success?",
//	    "content": "any?",
//	})
package schema
