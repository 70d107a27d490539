/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing sift schemas.

It allows developers to define schemas using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for
schemas that carry cross-field rules and computed fields (which are Go functions),
for unit testing, and for leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/sift/pkg/dsl"
		"github.com/aretw0/sift/pkg/schema"
	)

	func main() {
		b := dsl.New("Product")

		b.Int("product_id").
			Wire("productId").
			Required()

		b.String("item_name").
			Wire("itemName").
			Required()

		b.Int("stock_count").
			Wire("stockCount").
			Check(schema.GE(0))

		product, err := b.Build()
		if err != nil {
			panic(err)
		}

		// The resulting schema validates raw records.
		res, err := product.Validate(map[string]any{
			"productId": "101", "itemName": "Wireless Mouse", "stockCount": "50",
		})
		_ = res
		_ = err
	}
*/
package dsl
