package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// boolTokens are the string forms boolean coercion accepts, case-insensitive.
var boolTokens = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "on": true, "1": true,
	"false": false, "f": false, "no": false, "n": false, "off": false, "0": false,
}

// coerce converts a raw input value to the canonical value of kind k.
// When strict is set, only values already of the native type are accepted.
// Object kinds recurse through the validator and never reach here.
func coerce(k Kind, raw any, strict bool) (any, error) {
	switch k {
	case KindString, KindEnum, KindEmail, KindURL:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil
	case KindInt:
		return coerceInt(raw, strict)
	case KindFloat:
		return coerceFloat(raw, strict)
	case KindBool:
		return coerceBool(raw, strict)
	case KindDate:
		return coerceDate(raw, strict)
	case KindStringList:
		return coerceStringList(raw)
	}
	return nil, fmt.Errorf("unsupported kind %s", k)
}

func coerceInt(raw any, strict bool) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", v)
		}
		return int64(v), nil
	case json.Number:
		// A JSON number literal without a fraction is a native integer.
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("expected int, got number %s", v.String())
		}
		return n, nil
	case float32:
		if strict {
			return nil, fmt.Errorf("expected int, got %T", raw)
		}
		return wholeToInt(float64(v))
	case float64:
		if strict {
			return nil, fmt.Errorf("expected int, got %T", raw)
		}
		return wholeToInt(v)
	case string:
		if strict {
			return nil, fmt.Errorf("expected int, got %T", raw)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected int, got %T", raw)
	}
}

func wholeToInt(f float64) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("expected int, got float (not a whole number)")
	}
	return int64(f), nil
}

func coerceFloat(raw any, strict bool) (any, error) {
	switch v := raw.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", v.String())
		}
		return f, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if strict {
			return nil, fmt.Errorf("expected float, got %T", raw)
		}
		f, _ := asFloat(v)
		return f, nil
	case string:
		if strict {
			return nil, fmt.Errorf("expected float, got %T", raw)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", v)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("expected float, got %T", raw)
	}
}

func coerceBool(raw any, strict bool) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	if strict {
		return nil, fmt.Errorf("expected bool, got %T", raw)
	}
	switch v := raw.(type) {
	case string:
		b, ok := boolTokens[strings.ToLower(strings.TrimSpace(v))]
		if !ok {
			return nil, fmt.Errorf("cannot parse %q as bool", v)
		}
		return b, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as bool", v.String())
		}
		return intToBool(n)
	default:
		if n, ok := asInt(raw); ok {
			return intToBool(n)
		}
		return nil, fmt.Errorf("expected bool, got %T", raw)
	}
}

func intToBool(n int64) (any, error) {
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return nil, fmt.Errorf("cannot parse %d as bool", n)
}

func coerceDate(raw any, strict bool) (any, error) {
	switch v := raw.(type) {
	case Date:
		return v, nil
	case time.Time:
		return DateOf(v), nil
	case string:
		if strict {
			return nil, fmt.Errorf("expected date, got %T", raw)
		}
		return ParseDate(v)
	default:
		return nil, fmt.Errorf("expected date, got %T", raw)
	}
}

// coerceStringList accepts []string or a []any whose elements are all
// strings, which is how decoded JSON and YAML deliver lists. Strictness does
// not change list handling; splitting delimited text is a boundary concern.
func coerceStringList(raw any) (any, error) {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("list element %d: expected string, got %T", i, elem)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected [string], got %T", raw)
	}
}

// checkEmail applies an RFC 5322 address check: a bare local@domain with no
// display name.
func checkEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// checkURL requires an absolute URL with a scheme and an authority.
func checkURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url")
	}
	return nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int64(n), true
		}
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	}
	return 0, false
}
