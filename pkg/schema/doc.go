// Package schema validates raw, untyped records against declarative schemas.
//
// A schema is defined once as a Spec value (fields, constraints, cross-field
// rules, computed fields) and compiled into an immutable Schema. Validating a
// raw record either normalizes it into typed values or reports every field
// problem in one pass as structured errors.
//
// Basic usage:
//
//	product := schema.MustCompile(schema.Spec{
//	    Name: "Product",
//	    Fields: []schema.Field{
//	        {Name: "product_id", Wire: "productId", Kind: schema.KindInt, Required: true},
//	        {Name: "item_name", Wire: "itemName", Kind: schema.KindString, Required: true},
//	        {Name: "stock_count", Wire: "stockCount", Kind: schema.KindInt,
//	            Constraints: []schema.Constraint{schema.GE(0)}},
//	    },
//	})
//
//	res, err := product.Validate(map[string]any{
//	    "productId": "101", "itemName": "Wireless Mouse", "stockCount": "50",
//	})
//	if err != nil {
//	    for _, fe := range schema.AsIssues(err) {
//	        // fe.Path, fe.Code, fe.Message, fe.Value
//	    }
//	}
//	res.Values["product_id"] // int64(101)
//
// Values are coerced to their declared kind unless the field is strict:
// numeric kinds parse well-formed numeric strings, booleans accept common
// truthy and falsy tokens, dates accept ISO-8601 calendar dates. A strict
// field accepts only values already of the native Go type.
//
// Every definition problem (duplicate names, unknown kinds, bad patterns,
// computed-field cycles) is reported by Compile, never at validation time.
// A compiled Schema is read-only and safe for concurrent use.
//
// Schemas describe themselves: Describe returns a serializable dump of every
// field, constraint, rule, and computed field, enough to render a form or
// documentation without touching engine internals.
package schema
