// Package playground ships the built-in schema catalog served by the demo
// hosts. The eight schemas cover the engine's whole feature surface: coercion
// and defaults, nesting, cross-field rules, computed fields, wire aliases,
// strict mode, enums, and the forbid policy.
package playground

import (
	"errors"

	"github.com/aretw0/sift/pkg/dsl"
	"github.com/aretw0/sift/pkg/registry"
	"github.com/aretw0/sift/pkg/schema"
)

// US zip, five digits with an optional plus-four part.
const zipPattern = `^\d{5}(-\d{4})?$`

// Registry returns a fresh catalog holding the built-in schemas.
func Registry() *registry.Registry {
	reg, err := registry.NewFromSpecs(
		item().Spec(),
		user().Spec(),
		event().Spec(),
		orderItem().Spec(),
		product().Spec(),
		strictData().Spec(),
		task().Spec(),
		configuredModel().Spec(),
	)
	if err != nil {
		// The catalog is static; failing to compile it is a programming error.
		panic(err)
	}
	return reg
}

// item shows required fields, optional fields, defaults and coercion.
func item() *dsl.Builder {
	b := dsl.New("Item")
	b.String("name").Required().Doc("Display name.")
	b.String("description").Default(schema.Null)
	b.Float("price").Required().Check(schema.GT(0))
	b.Int("quantity").Default(int64(1)).Check(schema.GE(0))
	b.StringList("tags").Default([]string{})
	return b
}

// user nests an address record and validates email format.
func user() *dsl.Builder {
	address := dsl.New("Address")
	address.String("street").Required()
	address.String("city").Required()
	address.String("zip_code").Required().Check(schema.Pattern(zipPattern)).
		Doc("US zip code, e.g. 12345 or 12345-6789.")

	b := dsl.New("User")
	b.String("username").Required()
	b.Email("email").Required()
	b.Object("address", address).Required()
	b.StringList("hobbies").Default([]string{})
	return b
}

// event carries a cross-field rule over its two dates.
func event() *dsl.Builder {
	b := dsl.New("Event")
	b.String("name").Required()
	b.Date("start_date").Required()
	b.Date("end_date").Required()
	b.Rule("date_order", func(r schema.Record) error {
		if r["end_date"].(schema.Date).Before(r["start_date"].(schema.Date)) {
			return errors.New("End date cannot be before start date")
		}
		return nil
	})
	return b
}

// orderItem derives the order total from price and quantity.
func orderItem() *dsl.Builder {
	b := dsl.New("OrderItem")
	b.String("item_name").Required()
	b.Float("price").Required().Check(schema.GT(0))
	b.Int("quantity").Required().Check(schema.GE(1))
	b.Computed("total_cost", schema.KindFloat, func(r schema.Record) any {
		return r["price"].(float64) * float64(r["quantity"].(int64))
	}, "price", "quantity")
	return b
}

// product reads camelCase wire names into snake_case canonical fields.
func product() *dsl.Builder {
	b := dsl.New("Product")
	b.Int("product_id").Wire("productId").Required()
	b.String("item_name").Wire("itemName").Required()
	b.Int("stock_count").Wire("stockCount").Required().Check(schema.GE(0))
	return b
}

// strictData disables coercion on the id and validates the string formats.
func strictData() *dsl.Builder {
	b := dsl.New("StrictData")
	b.Int("strict_user_id").Required().Strict().Doc("Must arrive as a native integer.")
	b.Email("user_email").Required()
	b.URL("website").Default(schema.Null)
	return b
}

// task restricts status to a closed set of states.
func task() *dsl.Builder {
	b := dsl.New("Task")
	b.String("task_id").Required()
	b.Enum("status", "pending", "running", "completed", "failed").Required()
	return b
}

// configuredModel rejects any key its fields do not declare.
func configuredModel() *dsl.Builder {
	b := dsl.New("ConfiguredModel")
	b.String("expected_field").Required()
	b.Int("optional_field").Default(schema.Null)
	b.Forbid()
	return b
}
