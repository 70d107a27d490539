package schema

import (
	"errors"
	"fmt"
	"testing"
)

func productSchema() *Schema {
	return MustCompile(Spec{
		Name: "Product",
		Fields: []Field{
			{Name: "product_id", Wire: "productId", Kind: KindInt, Required: true},
			{Name: "item_name", Wire: "itemName", Kind: KindString, Required: true},
			{Name: "stock_count", Wire: "stockCount", Kind: KindInt, Constraints: []Constraint{GE(0)}},
		},
	})
}

func TestValidate_ProductScenario(t *testing.T) {
	s := productSchema()

	res, err := s.Validate(map[string]any{
		"productId":  "101",
		"itemName":   "Wireless Mouse",
		"stockCount": "50",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	if got := res.Values["product_id"]; got != int64(101) {
		t.Errorf("product_id = %v (%T), want int64(101)", got, got)
	}
	if got := res.Values["item_name"]; got != "Wireless Mouse" {
		t.Errorf("item_name = %v, want Wireless Mouse", got)
	}
	if got := res.Values["stock_count"]; got != int64(50) {
		t.Errorf("stock_count = %v (%T), want int64(50)", got, got)
	}
}

func TestValidate_WireRoundTrip(t *testing.T) {
	s := productSchema()

	res, err := s.Validate(map[string]any{
		"productId": "101", "itemName": "Wireless Mouse", "stockCount": "50",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	wire := res.DumpWire()
	for _, key := range []string{"productId", "itemName", "stockCount"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("DumpWire() missing key %q", key)
		}
	}

	again, err := s.Validate(wire)
	if err != nil {
		t.Fatalf("Validate(DumpWire()) error = %v, want nil", err)
	}
	for name, want := range res.Values {
		if got := again.Values[name]; got != want {
			t.Errorf("round-trip %s = %v, want %v", name, got, want)
		}
	}
}

func TestValidate_RequiredMissing(t *testing.T) {
	s := productSchema()

	_, err := s.Validate(map[string]any{"productId": 1})
	issues := AsIssues(err)
	if len(issues) != 1 {
		t.Fatalf("Validate() = %d errors, want 1: %v", len(issues), err)
	}
	fe := issues[0]
	if fe.Path != "item_name" || fe.Code != CodeRequired {
		t.Errorf("error = {%s %s}, want {item_name required}", fe.Path, fe.Code)
	}
	if fe.Message != "field required" {
		t.Errorf("message = %q, want %q", fe.Message, "field required")
	}
}

func TestValidate_AccumulatesAcrossFields(t *testing.T) {
	s := productSchema()

	_, err := s.Validate(map[string]any{
		"productId":  "abc",
		"stockCount": -3,
	})
	issues := AsIssues(err)
	if len(issues) != 3 {
		t.Fatalf("Validate() = %d errors, want 3: %v", len(issues), err)
	}

	// Declaration order: type error, missing required, constraint violation.
	if issues[0].Path != "product_id" || issues[0].Code != CodeType {
		t.Errorf("issues[0] = {%s %s}, want {product_id type}", issues[0].Path, issues[0].Code)
	}
	if issues[1].Path != "item_name" || issues[1].Code != CodeRequired {
		t.Errorf("issues[1] = {%s %s}, want {item_name required}", issues[1].Path, issues[1].Code)
	}
	if issues[2].Path != "stock_count" || issues[2].Code != CodeConstraint {
		t.Errorf("issues[2] = {%s %s}, want {stock_count constraint}", issues[2].Path, issues[2].Code)
	}
}

func TestValidate_StrictInt(t *testing.T) {
	s := MustCompile(Spec{
		Name: "StrictData",
		Fields: []Field{
			{Name: "user_id", Kind: KindInt, Required: true, Strict: true},
		},
	})

	_, err := s.Validate(map[string]any{"user_id": "42"})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Code != CodeType {
		t.Fatalf("strict int with string: got %v, want one type error", err)
	}

	res, err := s.Validate(map[string]any{"user_id": 42})
	if err != nil {
		t.Fatalf("strict int with native int: error = %v, want nil", err)
	}
	if res.Values["user_id"] != int64(42) {
		t.Errorf("user_id = %v, want int64(42)", res.Values["user_id"])
	}
}

func TestValidate_CrossFieldRule(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Event",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "start_date", Kind: KindDate, Required: true},
			{Name: "end_date", Kind: KindDate, Required: true},
		},
		Rules: []Rule{{
			Name: "end_not_before_start",
			Check: func(rec Record) error {
				start := rec["start_date"].(Date)
				end := rec["end_date"].(Date)
				if end.Before(start) {
					return errors.New("End date cannot be before start date")
				}
				return nil
			},
		}},
	})

	_, err := s.Validate(map[string]any{
		"name":       "Launch",
		"start_date": "2026-05-10",
		"end_date":   "2026-05-08",
	})
	issues := AsIssues(err)
	if len(issues) != 1 {
		t.Fatalf("Validate() = %d errors, want exactly 1: %v", len(issues), err)
	}
	fe := issues[0]
	if fe.Path != RootPath || fe.Code != CodeRule {
		t.Errorf("error = {%s %s}, want {%s rule}", fe.Path, fe.Code, RootPath)
	}
	if fe.Message != "End date cannot be before start date" {
		t.Errorf("message = %q", fe.Message)
	}

	res, err := s.Validate(map[string]any{
		"name":       "Launch",
		"start_date": "2026-05-08",
		"end_date":   "2026-05-10",
	})
	if err != nil {
		t.Fatalf("valid dates: error = %v, want nil", err)
	}
	if res.Values["end_date"] != NewDate(2026, 5, 10) {
		t.Errorf("end_date = %v", res.Values["end_date"])
	}
}

func TestValidate_RulesSkippedOnFieldErrors(t *testing.T) {
	ruleRan := false
	s := MustCompile(Spec{
		Name: "Event",
		Fields: []Field{
			{Name: "start_date", Kind: KindDate, Required: true},
			{Name: "end_date", Kind: KindDate, Required: true},
		},
		Rules: []Rule{{
			Name:  "never",
			Check: func(Record) error { ruleRan = true; return errors.New("boom") },
		}},
	})

	_, err := s.Validate(map[string]any{"start_date": "not a date", "end_date": "2026-01-01"})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Code != CodeType {
		t.Fatalf("got %v, want one type error", err)
	}
	if ruleRan {
		t.Error("cross-field rule ran despite field errors")
	}
}

func TestValidate_FirstFailingRuleWins(t *testing.T) {
	secondRan := false
	s := MustCompile(Spec{
		Name:   "Ordered",
		Fields: []Field{{Name: "n", Kind: KindInt, Required: true}},
		Rules: []Rule{
			{Name: "first", Check: func(Record) error { return errors.New("first failed") }},
			{Name: "second", Check: func(Record) error { secondRan = true; return errors.New("second failed") }},
		},
	})

	_, err := s.Validate(map[string]any{"n": 1})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Message != "first failed" {
		t.Fatalf("got %v, want single error %q", err, "first failed")
	}
	if secondRan {
		t.Error("second rule ran after the first failed")
	}
}

func TestValidate_ExtraForbid(t *testing.T) {
	s := MustCompile(Spec{
		Name: "ConfiguredModel",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "value", Kind: KindInt, Required: true},
		},
		Extra: ExtraForbid,
	})

	_, err := s.Validate(map[string]any{"name": "cfg", "value": 1, "debug_mode": true})
	issues := AsIssues(err)
	if len(issues) != 1 {
		t.Fatalf("Validate() = %d errors, want exactly 1: %v", len(issues), err)
	}
	fe := issues[0]
	if fe.Path != "debug_mode" || fe.Code != CodeExtra {
		t.Errorf("error = {%s %s}, want {debug_mode extra}", fe.Path, fe.Code)
	}
	if fe.Value != true {
		t.Errorf("offending value = %v, want true", fe.Value)
	}
}

func TestValidate_ExtraForbidShortCircuits(t *testing.T) {
	s := MustCompile(Spec{
		Name: "ConfiguredModel",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
		},
		Extra: ExtraForbid,
	})

	// The required field is also missing, but extra keys abort first.
	_, err := s.Validate(map[string]any{"zz": 1, "aa": 2})
	issues := AsIssues(err)
	if len(issues) != 2 {
		t.Fatalf("Validate() = %d errors, want 2: %v", len(issues), err)
	}
	if issues[0].Path != "aa" || issues[1].Path != "zz" {
		t.Errorf("extra errors = [%s %s], want sorted [aa zz]", issues[0].Path, issues[1].Path)
	}
	for _, fe := range issues {
		if fe.Code != CodeExtra {
			t.Errorf("code = %s, want extra only", fe.Code)
		}
	}
}

func TestValidate_ExtraIgnored(t *testing.T) {
	s := productSchema()

	res, err := s.Validate(map[string]any{
		"productId": 1, "itemName": "x", "surprise": "dropped",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if _, ok := res.Values["surprise"]; ok {
		t.Error("undeclared key leaked into the normalized record")
	}
}

func TestValidate_ComputedFields(t *testing.T) {
	s := MustCompile(Spec{
		Name: "OrderItem",
		Fields: []Field{
			{Name: "product_name", Kind: KindString, Required: true},
			{Name: "price", Kind: KindFloat, Required: true, Constraints: []Constraint{GT(0)}},
			{Name: "quantity", Kind: KindInt, Required: true, Constraints: []Constraint{GT(0)}},
		},
		Computed: []Computed{{
			Name: "total_cost",
			Kind: KindFloat,
			Uses: []string{"price", "quantity"},
			Fn: func(rec Record) any {
				return rec["price"].(float64) * float64(rec["quantity"].(int64))
			},
		}},
	})

	raw := map[string]any{"product_name": "Widget", "price": 19.99, "quantity": 3}

	res, err := s.Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	price := 19.99
	want := price * 3
	if got := res.Computed["total_cost"]; got != want {
		t.Errorf("total_cost = %v, want %v", got, want)
	}
	if _, ok := res.Values["total_cost"]; ok {
		t.Error("computed value leaked into Values")
	}

	// Determinism across repeated calls on the same inputs.
	again, err := s.Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if res.Computed["total_cost"] != again.Computed["total_cost"] {
		t.Error("computed value differs across calls")
	}
}

func TestValidate_ComputedChain(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Chained",
		Fields: []Field{
			{Name: "base", Kind: KindFloat, Required: true},
		},
		Computed: []Computed{
			{Name: "doubled", Kind: KindFloat, Uses: []string{"base"},
				Fn: func(rec Record) any { return rec["base"].(float64) * 2 }},
			{Name: "quadrupled", Kind: KindFloat, Uses: []string{"doubled"},
				Fn: func(rec Record) any { return rec["doubled"].(float64) * 2 }},
		},
	})

	res, err := s.Validate(map[string]any{"base": 2.5})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if got := res.Computed["quadrupled"]; got != 10.0 {
		t.Errorf("quadrupled = %v, want 10", got)
	}
}

func TestValidate_ComputedNeverAcceptedAsInput(t *testing.T) {
	spec := Spec{
		Name:   "Derived",
		Fields: []Field{{Name: "value", Kind: KindInt, Required: true}},
		Computed: []Computed{{
			Name: "double", Kind: KindInt, Uses: []string{"value"},
			Fn: func(rec Record) any { return rec["value"].(int64) * 2 },
		}},
	}

	t.Run("ignored by default", func(t *testing.T) {
		s := MustCompile(spec)
		res, err := s.Validate(map[string]any{"value": 3, "double": 99})
		if err != nil {
			t.Fatalf("Validate() error = %v, want nil", err)
		}
		if got := res.Computed["double"]; got != int64(6) {
			t.Errorf("double = %v, want recomputed 6", got)
		}
	})

	t.Run("rejected under forbid", func(t *testing.T) {
		forbid := spec
		forbid.Extra = ExtraForbid
		s := MustCompile(forbid)
		_, err := s.Validate(map[string]any{"value": 3, "double": 99})
		issues := AsIssues(err)
		if len(issues) != 1 || issues[0].Path != "double" || issues[0].Code != CodeExtra {
			t.Fatalf("got %v, want one extra error on double", err)
		}
	})
}

func TestValidate_DefaultsUsedVerbatim(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Item",
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "quantity", Kind: KindInt, Default: int64(1), Constraints: []Constraint{GE(0)}},
			{Name: "level", Kind: KindInt, Default: "unchecked"},
			{Name: "in_stock", Kind: KindBool, Default: true},
		},
	})

	res, err := s.Validate(map[string]any{"name": "Gadget"})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if got := res.Values["quantity"]; got != int64(1) {
		t.Errorf("quantity = %v, want 1", got)
	}
	// A default is not coerced or constraint-checked, even a nonsensical one.
	if got := res.Values["level"]; got != "unchecked" {
		t.Errorf("level = %v (%T), want the raw default string", got, got)
	}
	if got := res.Values["in_stock"]; got != true {
		t.Errorf("in_stock = %v, want true", got)
	}
}

func TestValidate_NullDefault(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Page",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "homepage", Kind: KindURL, Default: Null},
		},
	})

	res, err := s.Validate(map[string]any{"title": "t"})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	v, ok := res.Values["homepage"]
	if !ok {
		t.Fatal("homepage missing from record, want explicit null")
	}
	if v != nil {
		t.Errorf("homepage = %v, want nil", v)
	}
}

func TestValidate_NullInputOnNullableField(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Page",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "homepage", Kind: KindURL, Default: Null},
		},
	})

	// An explicit null is a valid value for a field with a null default.
	res, err := s.Validate(map[string]any{"title": "t", "homepage": nil})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if v, ok := res.Values["homepage"]; !ok || v != nil {
		t.Errorf("homepage = %v (present=%v), want explicit null", v, ok)
	}

	// Without a null default, null is just a type mismatch.
	_, err = s.Validate(map[string]any{"title": nil})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Code != CodeType {
		t.Fatalf("got %v, want one type error", err)
	}
}

func TestValidate_OptionalAbsentStaysAbsent(t *testing.T) {
	s := productSchema()

	res, err := s.Validate(map[string]any{"productId": 1, "itemName": "x"})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if _, ok := res.Values["stock_count"]; ok {
		t.Error("absent optional field appeared in the record")
	}
}

func TestValidate_EmptyStringIsPresent(t *testing.T) {
	s := MustCompile(Spec{
		Name: "User",
		Fields: []Field{
			{Name: "username", Kind: KindString, Required: true, Constraints: []Constraint{MinLen(3)}},
			{Name: "age", Kind: KindInt},
		},
	})

	// Empty string satisfies presence but still fails the length constraint.
	_, err := s.Validate(map[string]any{"username": ""})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Code != CodeConstraint {
		t.Fatalf("got %v, want one constraint error", err)
	}

	// And an empty string is not a parseable int.
	_, err = s.Validate(map[string]any{"username": "abc", "age": ""})
	issues = AsIssues(err)
	if len(issues) != 1 || issues[0].Code != CodeType {
		t.Fatalf("got %v, want one type error", err)
	}
}

func TestValidate_NestedObject(t *testing.T) {
	address := Spec{
		Name: "Address",
		Fields: []Field{
			{Name: "street", Kind: KindString, Required: true},
			{Name: "city", Kind: KindString, Required: true},
			{Name: "zip_code", Kind: KindString, Required: true,
				Constraints: []Constraint{Pattern(`^\d{5}(-\d{4})?$`)}},
		},
	}
	s := MustCompile(Spec{
		Name: "User",
		Fields: []Field{
			{Name: "username", Kind: KindString, Required: true},
			{Name: "address", Kind: KindObject, Required: true, Object: &address},
		},
	})

	res, err := s.Validate(map[string]any{
		"username": "ana",
		"address":  map[string]any{"street": "1 Main St", "city": "Springfield", "zip_code": "12345-6789"},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	nested, ok := res.Values["address"].(Record)
	if !ok {
		t.Fatalf("address = %T, want Record", res.Values["address"])
	}
	if nested["zip_code"] != "12345-6789" {
		t.Errorf("zip_code = %v", nested["zip_code"])
	}
}

func TestValidate_NestedErrorsPrefixed(t *testing.T) {
	address := Spec{
		Name: "Address",
		Fields: []Field{
			{Name: "street", Kind: KindString, Required: true},
			{Name: "zip_code", Kind: KindString, Required: true,
				Constraints: []Constraint{Pattern(`^\d{5}(-\d{4})?$`)}},
		},
	}
	s := MustCompile(Spec{
		Name: "User",
		Fields: []Field{
			{Name: "username", Kind: KindString, Required: true},
			{Name: "address", Kind: KindObject, Required: true, Object: &address},
		},
	})

	_, err := s.Validate(map[string]any{
		"username": "ana",
		"address":  map[string]any{"zip_code": "1234"},
	})
	issues := AsIssues(err)
	if len(issues) != 2 {
		t.Fatalf("Validate() = %d errors, want 2: %v", len(issues), err)
	}
	if issues[0].Path != "address.street" || issues[0].Code != CodeRequired {
		t.Errorf("issues[0] = {%s %s}, want {address.street required}", issues[0].Path, issues[0].Code)
	}
	// Pattern failures report as format errors.
	if issues[1].Path != "address.zip_code" || issues[1].Code != CodeFormat {
		t.Errorf("issues[1] = {%s %s}, want {address.zip_code format}", issues[1].Path, issues[1].Code)
	}
}

func TestValidate_NestedNotAnObject(t *testing.T) {
	address := Spec{
		Name:   "Address",
		Fields: []Field{{Name: "street", Kind: KindString, Required: true}},
	}
	s := MustCompile(Spec{
		Name: "User",
		Fields: []Field{
			{Name: "address", Kind: KindObject, Required: true, Object: &address},
		},
	})

	_, err := s.Validate(map[string]any{"address": "not a map"})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Code != CodeType || issues[0].Path != "address" {
		t.Fatalf("got %v, want one type error on address", err)
	}
}

func TestValidate_EnumScenario(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Task",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "status", Kind: KindEnum,
				Enum:    []string{"pending", "running", "completed", "failed"},
				Default: "pending"},
		},
	})

	_, err := s.Validate(map[string]any{"title": "Ship it", "status": "unknown"})
	issues := AsIssues(err)
	if len(issues) != 1 {
		t.Fatalf("Validate() = %d errors, want 1: %v", len(issues), err)
	}
	fe := issues[0]
	if fe.Path != "status" || fe.Code != CodeConstraint {
		t.Errorf("error = {%s %s}, want {status constraint}", fe.Path, fe.Code)
	}
	if fe.Message != "must be one of: pending, running, completed, failed" {
		t.Errorf("message = %q", fe.Message)
	}

	res, err := s.Validate(map[string]any{"title": "Ship it"})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if res.Values["status"] != "pending" {
		t.Errorf("status = %v, want default pending", res.Values["status"])
	}
}

func TestValidate_FormatChecks(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Contact",
		Fields: []Field{
			{Name: "email", Kind: KindEmail, Required: true},
			{Name: "site", Kind: KindURL},
		},
	})

	res, err := s.Validate(map[string]any{
		"email": "ana@example.com",
		"site":  "https://example.com/about",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if res.Values["email"] != "ana@example.com" {
		t.Errorf("email = %v", res.Values["email"])
	}

	_, err = s.Validate(map[string]any{"email": "not-an-email", "site": "nope"})
	issues := AsIssues(err)
	if len(issues) != 2 {
		t.Fatalf("Validate() = %d errors, want 2: %v", len(issues), err)
	}
	for _, fe := range issues {
		if fe.Code != CodeFormat {
			t.Errorf("%s code = %s, want format", fe.Path, fe.Code)
		}
	}
}

func TestValidate_AllConstraintsEvaluated(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Handle",
		Fields: []Field{
			{Name: "handle", Kind: KindString, Required: true,
				Constraints: []Constraint{MinLen(5), Pattern(`^[a-z]+$`)}},
		},
	})

	_, err := s.Validate(map[string]any{"handle": "A1"})
	issues := AsIssues(err)
	if len(issues) != 2 {
		t.Fatalf("Validate() = %d errors, want both constraint failures: %v", len(issues), err)
	}
	if issues[0].Code != CodeConstraint || issues[1].Code != CodeFormat {
		t.Errorf("codes = [%s %s], want [constraint format]", issues[0].Code, issues[1].Code)
	}
}

func TestValidate_ConstraintMessageOverride(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Item",
		Fields: []Field{
			{Name: "price", Kind: KindFloat, Required: true,
				Constraints: []Constraint{GT(0).WithMessage("price must be positive")}},
		},
	})

	_, err := s.Validate(map[string]any{"price": -1})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Message != "price must be positive" {
		t.Fatalf("got %v, want overridden message", err)
	}
}

func TestValidate_StringListField(t *testing.T) {
	s := MustCompile(Spec{
		Name: "Item",
		Fields: []Field{
			{Name: "tags", Kind: KindStringList, Default: []string{}},
		},
	})

	res, err := s.Validate(map[string]any{"tags": []any{"new", "sale"}})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	tags, ok := res.Values["tags"].([]string)
	if !ok || len(tags) != 2 || tags[0] != "new" {
		t.Errorf("tags = %v (%T)", res.Values["tags"], res.Values["tags"])
	}

	_, err = s.Validate(map[string]any{"tags": []any{"ok", 7}})
	issues := AsIssues(err)
	if len(issues) != 1 || issues[0].Code != CodeType {
		t.Fatalf("got %v, want one type error", err)
	}
}

func TestValidate_InputNeverMutated(t *testing.T) {
	s := productSchema()

	raw := map[string]any{"productId": "101", "itemName": "Mouse"}
	if _, err := s.Validate(raw); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if raw["productId"] != "101" || len(raw) != 2 {
		t.Errorf("raw input mutated: %v", raw)
	}
}

func TestValidate_ConcurrentUse(t *testing.T) {
	s := productSchema()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(n int) {
			for j := 0; j < 50; j++ {
				_, err := s.Validate(map[string]any{
					"productId": fmt.Sprint(n*100 + j), "itemName": "x",
				})
				if err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}(i)
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent Validate() error = %v", err)
		}
	}
}

func TestAsIssues_WrappedError(t *testing.T) {
	s := productSchema()

	_, err := s.Validate(map[string]any{})
	wrapped := fmt.Errorf("checking input: %w", err)
	if got := AsIssues(wrapped); len(got) != 2 {
		t.Errorf("AsIssues(wrapped) = %d errors, want 2", len(got))
	}
	if AsIssues(errors.New("plain")) != nil {
		t.Error("AsIssues() on a plain error should be nil")
	}
}

func TestIssues_ErrorString(t *testing.T) {
	one := Issues{{Path: "price", Code: CodeConstraint, Message: "must be greater than 0", Value: -1}}
	if got := one.Error(); got != `field "price": must be greater than 0 (got int)` {
		t.Errorf("Error() = %q", got)
	}

	two := Issues{
		{Path: "name", Code: CodeRequired, Message: "field required"},
		{Path: "price", Code: CodeType, Message: "expected float, got bool", Value: true},
	}
	msg := two.Error()
	if len(msg) == 0 || msg[:2] != "2 " {
		t.Errorf("Error() = %q, want a count-prefixed summary", msg)
	}
}
