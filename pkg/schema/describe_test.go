package schema

import (
	"encoding/json"
	"testing"
)

func TestDescribe(t *testing.T) {
	address := Spec{
		Name: "Address",
		Fields: []Field{
			{Name: "zip_code", Kind: KindString, Required: true,
				Constraints: []Constraint{Pattern(`^\d{5}$`)}},
		},
	}
	s := MustCompile(Spec{
		Name: "Profile",
		Fields: []Field{
			{Name: "username", Kind: KindString, Required: true,
				Constraints: []Constraint{MinLen(3), MaxLen(20)},
				Description: "Login handle."},
			{Name: "status", Kind: KindEnum, Enum: []string{"active", "banned"}, Default: "active"},
			{Name: "referral", Wire: "ref", Kind: KindURL, Default: Null},
			{Name: "score", Kind: KindInt, Strict: true},
			{Name: "address", Kind: KindObject, Object: &address},
		},
		Rules: []Rule{{Name: "score_matches_status", Check: func(Record) error { return nil }}},
		Computed: []Computed{{
			Name: "display", Kind: KindString, Uses: []string{"username"},
			Fn: func(rec Record) any { return rec["username"] },
		}},
	})

	d := s.Describe()

	if d.Name != "Profile" || d.Extra != ExtraIgnore {
		t.Errorf("header = %q %q", d.Name, d.Extra)
	}
	if len(d.Fields) != 5 {
		t.Fatalf("fields = %d, want 5", len(d.Fields))
	}

	username := d.Fields[0]
	if !username.Required || username.Wire != "username" || username.Description != "Login handle." {
		t.Errorf("username description = %+v", username)
	}
	if len(username.Constraints) != 2 || username.Constraints[0].Op != OpMinLen {
		t.Errorf("username constraints = %+v", username.Constraints)
	}

	status := d.Fields[1]
	if !status.HasDefault || status.Default != "active" || len(status.Enum) != 2 {
		t.Errorf("status description = %+v", status)
	}

	referral := d.Fields[2]
	if referral.Wire != "ref" {
		t.Errorf("referral wire = %q", referral.Wire)
	}
	if !referral.HasDefault || referral.Default != nil {
		t.Errorf("null default should describe as HasDefault with nil value, got %+v", referral)
	}

	if !d.Fields[3].Strict {
		t.Error("score should describe as strict")
	}

	nested := d.Fields[4].Object
	if nested == nil || nested.Name != "Address" || len(nested.Fields) != 1 {
		t.Fatalf("nested description = %+v", nested)
	}
	if nested.Fields[0].Constraints[0].Op != OpPattern {
		t.Errorf("nested constraint = %+v", nested.Fields[0].Constraints)
	}

	if len(d.Rules) != 1 || d.Rules[0] != "score_matches_status" {
		t.Errorf("rules = %v", d.Rules)
	}
	if len(d.Computed) != 1 || d.Computed[0].Name != "display" || d.Computed[0].Uses[0] != "username" {
		t.Errorf("computed = %+v", d.Computed)
	}
}

func TestDescribe_Serializable(t *testing.T) {
	s := productSchema()

	out, err := json.Marshal(s.Describe())
	if err != nil {
		t.Fatalf("Marshal(Describe()) error = %v", err)
	}

	var back Description
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Name != "Product" || len(back.Fields) != 3 {
		t.Errorf("round trip = %+v", back)
	}
	if back.Fields[0].Wire != "productId" {
		t.Errorf("wire = %q", back.Fields[0].Wire)
	}
}

func TestDescribe_IsACopy(t *testing.T) {
	s := productSchema()

	d := s.Describe()
	d.Fields[0].Wire = "tampered"

	if s.Describe().Fields[0].Wire != "productId" {
		t.Error("mutating a Description leaked into the schema")
	}
}
