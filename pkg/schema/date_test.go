package schema

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d != NewDate(2026, time.February, 28) {
		t.Errorf("ParseDate() = %v", d)
	}

	for _, bad := range []string{"2026-02-30", "28-02-2026", "2026/02/28", "today", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) = nil error, want failure", bad)
		}
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2026, time.May, 8)
	b := NewDate(2026, time.May, 10)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before() misordered")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After() misordered")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date neither precedes nor follows itself")
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2026, time.May, 10)

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `"2026-05-10"` {
		t.Errorf("Marshal() = %s", out)
	}

	var back Date
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	if err := json.Unmarshal([]byte(`"05/10/2026"`), &back); err == nil {
		t.Error("Unmarshal() accepted a non-ISO date")
	}
	if err := json.Unmarshal([]byte(`20260510`), &back); err == nil {
		t.Error("Unmarshal() accepted an unquoted value")
	}
}

func TestDateOf_DropsTimeOfDay(t *testing.T) {
	ts := time.Date(2026, time.May, 10, 23, 59, 59, 0, time.FixedZone("X", 3600))
	if got := DateOf(ts); got != NewDate(2026, time.May, 10) {
		t.Errorf("DateOf() = %v", got)
	}
}

func TestDate_ZeroAndString(t *testing.T) {
	var zero Date
	if !zero.IsZero() {
		t.Error("zero value not IsZero")
	}
	if NewDate(2026, time.May, 10).IsZero() {
		t.Error("real date reported as zero")
	}
	if got := NewDate(2026, time.May, 10).String(); got != "2026-05-10" {
		t.Errorf("String() = %q", got)
	}
}
