package dsl

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	codebook "github.com/reoring/codebook"
)

// Prim checks a raw value against one expected shape and returns it typed.
// Failures are codebook.Issues rooted at p.
type Prim[T any] func(p codebook.PathRef, v any) (T, error)

// Shape names used in type_mismatch issues.
const (
	ShapeString  = "string"
	ShapeNumber  = "number"
	ShapeInteger = "integer"
	ShapeBool    = "boolean"
	ShapeObject  = "object"
	ShapeArray   = "array"
	ShapeNull    = "null"
	// ShapeAny accepts every non-null value in a union requirement.
	ShapeAny = "any"
)

// ShapeOf describes the JSON shape of v for diagnostics.
func ShapeOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ShapeNull
	case string:
		return ShapeString
	case bool:
		return ShapeBool
	case []any:
		return ShapeArray
	case *codebook.Object, codebook.Object, map[string]any:
		return ShapeObject
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "non-finite number"
		}
		return ShapeNumber
	case json.Number:
		if _, ok := toFloat(t); !ok {
			return "non-finite number"
		}
		return ShapeNumber
	}
	if _, ok := toFloat(v); ok {
		return ShapeNumber
	}
	return fmt.Sprintf("%T", v)
}

// Matches reports whether v has the given shape without building issues.
func Matches(shape string, v any) bool {
	switch shape {
	case ShapeAny:
		return v != nil
	case ShapeNull:
		return v == nil
	case ShapeInteger:
		_, err := Integer(codebook.Root(), v)
		return err == nil
	}
	return ShapeOf(v) == shape
}

func mismatch(p codebook.PathRef, expected string, v any) error {
	return codebook.Issues{codebook.TypeMismatch(p, expected, ShapeOf(v))}
}

// String accepts JSON strings.
func String(p codebook.PathRef, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch(p, ShapeString, v)
	}
	return s, nil
}

// Bool accepts JSON booleans.
func Bool(p codebook.PathRef, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(p, ShapeBool, v)
	}
	return b, nil
}

// Number accepts finite numbers. NaN and ±Inf are rejected.
func Number(p codebook.PathRef, v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, mismatch(p, ShapeNumber, v)
	}
	return f, nil
}

// Integer accepts finite numbers without a fractional part that fit int64.
func Integer(p codebook.PathRef, v any) (int64, error) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, mismatch(p, ShapeInteger, v)
	}
	return int64(f), nil
}

// NonNegInt accepts integers >= 0.
func NonNegInt(p codebook.PathRef, v any) (int64, error) {
	i, err := Integer(p, v)
	if err != nil || i < 0 {
		return 0, mismatch(p, "non-negative integer", v)
	}
	return i, nil
}

// UnitInterval accepts numbers in [0,1].
func UnitInterval(p codebook.PathRef, v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok || f < 0 || f > 1 {
		return 0, mismatch(p, "number in [0,1]", v)
	}
	return f, nil
}

// Opaque accepts any object and returns it untyped.
func Opaque(p codebook.PathRef, v any) (*codebook.Object, error) {
	o, ok := codebook.AsObject(v)
	if !ok {
		return nil, mismatch(p, ShapeObject, v)
	}
	return o, nil
}

// Nullable lifts prim so that null yields nil instead of a type mismatch.
func Nullable[T any](prim Prim[T]) Prim[*T] {
	return func(p codebook.PathRef, v any) (*T, error) {
		if v == nil {
			return nil, nil
		}
		t, err := prim(p, v)
		if fatal(err) {
			return nil, err
		}
		return &t, err
	}
}

// ListOf validates every element of an array with prim. All element failures
// are accumulated; the returned slice holds the usable elements in order.
func ListOf[T any](prim Prim[T]) Prim[[]T] {
	return func(p codebook.PathRef, v any) ([]T, error) {
		arr, ok := v.([]any)
		if !ok {
			return nil, mismatch(p, ShapeArray, v)
		}
		out := make([]T, 0, len(arr))
		var iss codebook.Issues
		for i, e := range arr {
			t, err := prim(p.Index(i), e)
			iss = append(iss, codebook.ToIssues(err)...)
			if fatal(err) {
				continue
			}
			out = append(out, t)
		}
		if len(iss) > 0 {
			return out, iss
		}
		return out, nil
	}
}

// Entry is one key/value pair of an ordered mapping.
type Entry[T any] struct {
	Key   string
	Value T
}

// MapOf validates every value of an object with prim, keeping key order.
func MapOf[T any](prim Prim[T]) Prim[[]Entry[T]] {
	return func(p codebook.PathRef, v any) ([]Entry[T], error) {
		o, ok := codebook.AsObject(v)
		if !ok {
			return nil, mismatch(p, ShapeObject, v)
		}
		out := make([]Entry[T], 0, o.Len())
		var iss codebook.Issues
		o.Range(func(k string, e any) bool {
			t, err := prim(p.Field(k), e)
			iss = append(iss, codebook.ToIssues(err)...)
			if fatal(err) {
				return true
			}
			out = append(out, Entry[T]{Key: k, Value: t})
			return true
		})
		if len(iss) > 0 {
			return out, iss
		}
		return out, nil
	}
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		x, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		f = x
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
