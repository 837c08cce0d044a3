package inbound

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric request field that clients may send either as a JSON
// number or as a string. Parsing is deferred so that malformed values become
// validation errors instead of decode failures.
type Number struct {
	raw string
	set bool
}

// NumberFromString wraps a raw value, e.g. a query or form parameter
func NumberFromString(s string) Number {
	s = strings.TrimSpace(s)
	return Number{raw: s, set: s != ""}
}

// NumberOf wraps a float
func NumberOf(f float64) Number {
	return Number{raw: strconv.FormatFloat(f, 'f', -1, 64), set: true}
}

// UnmarshalJSON accepts numbers, strings and null
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberFromString(s)
		return nil
	}
	*n = Number{raw: string(b), set: true}
	return nil
}

// MarshalJSON writes the raw value, or null when unset
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsSet() {
		return []byte("null"), nil
	}
	if f, err := n.Float(); err == nil {
		return json.Marshal(f)
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether a non-blank value was supplied
func (n Number) IsSet() bool {
	return n.set && n.raw != ""
}

// String returns the raw text
func (n Number) String() string {
	return n.raw
}

// Float parses the value as a finite float
func (n Number) Float() (float64, error) {
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", n.raw)
	}
	return f, nil
}

// Int parses the value as an integer. Floats with no fractional part are accepted.
func (n Number) Int() (int, error) {
	if i, err := strconv.Atoi(n.raw); err == nil {
		return i, nil
	}
	f, err := n.Float()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is not an integer", n.raw)
	}
	return int(f), nil
}
