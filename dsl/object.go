package dsl

import (
	codebook "github.com/reoring/codebook"
)

// Obj is a cursor over one object being validated. Field accessors never stop
// at the first defect: every failure is appended to the cursor so a record
// reports all of its problems at once.
type Obj struct {
	o   *codebook.Object
	at  codebook.PathRef
	iss codebook.Issues
}

// Object opens a cursor over v, which must be an object.
func Object(p codebook.PathRef, v any) (*Obj, error) {
	o, ok := codebook.AsObject(v)
	if !ok {
		return nil, mismatch(p, ShapeObject, v)
	}
	return &Obj{o: o, at: p}, nil
}

// Path returns the pointer of the object itself.
func (o *Obj) Path() codebook.PathRef { return o.at }

// At returns the pointer of key within the object.
func (o *Obj) At(key string) codebook.PathRef { return o.at.Field(key) }

// Has reports whether key is present (null counts as present).
func (o *Obj) Has(key string) bool { return o.o.Has(key) }

// Raw returns the unvalidated value under key.
func (o *Obj) Raw(key string) (any, bool) { return o.o.Get(key) }

// Source returns the underlying object.
func (o *Obj) Source() *codebook.Object { return o.o }

// Add records issues on the cursor.
func (o *Obj) Add(iss ...codebook.Issue) { o.iss = append(o.iss, iss...) }

// Report records err, converting non-Issues errors to a parse_error.
func (o *Obj) Report(err error) {
	if err == nil {
		return
	}
	o.iss = append(o.iss, codebook.ToIssues(err)...)
}

// Issues returns everything recorded so far, warnings included.
func (o *Obj) Issues() codebook.Issues { return o.iss }

// Err returns the recorded issues as an error when at least one is fatal.
func (o *Obj) Err() error { return o.iss.Err() }

// Req validates a required field. An absent key is a missing_required_field;
// a null value fails prim like any other wrong shape.
func Req[T any](o *Obj, key string, prim Prim[T]) T {
	var zero T
	v, ok := o.o.Get(key)
	if !ok {
		o.Add(codebook.MissingField(o.At(key)))
		return zero
	}
	t, err := prim(o.At(key), v)
	o.Report(err)
	if fatal(err) {
		return zero
	}
	return t
}

// Opt validates an optional, nullable field. Absent and null both yield nil.
func Opt[T any](o *Obj, key string, prim Prim[T]) *T {
	v, ok := o.o.Get(key)
	if !ok || v == nil {
		return nil
	}
	t, err := prim(o.At(key), v)
	o.Report(err)
	if fatal(err) {
		return nil
	}
	return &t
}

// Default validates an optional field that falls back to def when absent.
// Null is not absent and must satisfy prim.
func Default[T any](o *Obj, key string, prim Prim[T], def T) T {
	v, ok := o.o.Get(key)
	if !ok {
		return def
	}
	t, err := prim(o.At(key), v)
	o.Report(err)
	if fatal(err) {
		return def
	}
	return t
}

// fatal reports whether err carries a fatal issue. Prims may return
// warnings alongside a usable value.
func fatal(err error) bool { return codebook.ToIssues(err).HasFatal() }
