package dsl

import (
	codebook "github.com/reoring/codebook"
)

// Requirement names a key that must be present with the given shape.
type Requirement struct {
	Key   string
	Shape string
}

// Variant is one arm of a structural (tag-less) union.
type Variant[T any] struct {
	Name string
	// Requires lists keys that must all be present and well-shaped.
	Requires []Requirement
	// AnyOf lists keys of which at least one must be present (null allowed).
	AnyOf []string
	// Signature lists keys that only this variant declares. When one of them
	// is present the record is committed to this variant even if it does not
	// satisfy Requires, so its defects are reported against this variant
	// rather than a less specific one tried later.
	Signature []string
	// Decode validates every field of the variant on the cursor.
	Decode func(o *Obj) T
}

// Union discriminates records by shape. Variants are tried in order, so the
// most specific shape must come first.
type Union[T any] struct {
	Name     string
	Variants []Variant[T]
}

// Resolve selects a variant for v and decodes it. Variants are tried in
// order and the first one that either satisfies its requirements (extra keys
// are ignored) or is committed by one of its signature keys wins. A committed
// variant is decoded even when malformed, so a ValueRange missing count fails
// as a ValueRange instead of passing as a ValueDef. When no variant is
// selected the value is an unresolvable_union naming every variant.
//
// The returned name is empty when nothing could be selected.
func (u Union[T]) Resolve(p codebook.PathRef, v any) (T, string, error) {
	var zero T
	o, err := Object(p, v)
	if err != nil {
		return zero, "", err
	}
	idx := u.choose(o)
	if idx < 0 {
		return zero, "", codebook.Issues{codebook.UnresolvableUnion(p, u.Name, u.names())}
	}
	vr := u.Variants[idx]
	out := vr.Decode(o)
	if iss := o.Issues(); len(iss) > 0 {
		return out, vr.Name, iss
	}
	return out, vr.Name, nil
}

// Parse adapts Resolve to a Prim so unions compose with Req, Opt and ListOf.
func (u Union[T]) Parse(p codebook.PathRef, v any) (T, error) {
	t, _, err := u.Resolve(p, v)
	return t, err
}

// Select reports which variant v would be decoded as, or "" when the value is
// unresolvable. It performs no field validation.
func (u Union[T]) Select(v any) string {
	o, err := Object(codebook.Root(), v)
	if err != nil {
		return ""
	}
	idx := u.choose(o)
	if idx < 0 {
		return ""
	}
	return u.Variants[idx].Name
}

func (u Union[T]) choose(o *Obj) int {
	for i, vr := range u.Variants {
		if satisfied(o, vr) || committed(o, vr) {
			return i
		}
	}
	return -1
}

func (u Union[T]) names() []string {
	out := make([]string, len(u.Variants))
	for i, vr := range u.Variants {
		out[i] = vr.Name
	}
	return out
}

func committed[T any](o *Obj, vr Variant[T]) bool {
	for _, k := range vr.Signature {
		if o.Has(k) {
			return true
		}
	}
	return false
}

func satisfied[T any](o *Obj, vr Variant[T]) bool {
	for _, r := range vr.Requires {
		v, ok := o.Raw(r.Key)
		if !ok || !Matches(r.Shape, v) {
			return false
		}
	}
	if len(vr.AnyOf) == 0 {
		return true
	}
	for _, k := range vr.AnyOf {
		if o.Has(k) {
			return true
		}
	}
	return false
}
