// Package table contains the in-memory tabular data structure shared by
// every pipeline stage. Cells are nullable: a missing value is explicit and
// distinct from zero, and every transform propagates missing rather than
// coercing it.
package table

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindString
	KindFloat
	KindInt
	KindTime
)

// Value is a single nullable cell.
type Value struct {
	kind Kind
	s    string
	f    float64
	i    int64
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string-kinded value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Float returns a float-kinded value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Int returns an int-kinded value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Time returns a time-kinded value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind reports the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string content. ok is false unless the value is
// string-kinded.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsFloat returns the numeric content of a float or int value.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsInt returns the integer content. ok is false unless the value is
// int-kinded.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsTime returns the timestamp content. ok is false unless the value is
// time-kinded.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// Text renders the value for display or CSV projection. Null renders as the
// empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Native returns the cell as a plain Go value suitable for JSON encoding:
// nil for null, string, float64, int64, or time.Time.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return v.f
	case KindInt:
		return v.i
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// ParseFloat attempts a numeric reading of the value: floats and ints pass
// through, strings are parsed after trimming. Anything else is null.
func (v Value) ParseFloat() (float64, bool) {
	if f, ok := v.AsFloat(); ok {
		return f, true
	}
	if s, ok := v.AsString(); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindFloat:
		return v.f == o.f
	case KindInt:
		return v.i == o.i
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return true
	}
}
