package dsl_test

import (
	"testing"

	codebook "github.com/reoring/codebook"
	g "github.com/reoring/codebook/dsl"
)

type person struct {
	Name  string
	Age   float64
	Email *string
	Admin bool
}

func decodePerson(t *testing.T, v any) (person, codebook.Issues) {
	t.Helper()
	o, err := g.Object(codebook.Root(), v)
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	p := person{
		Name:  g.Req(o, "name", g.String),
		Age:   g.Req(o, "age", g.Number),
		Email: g.Opt(o, "email", g.String),
		Admin: g.Default(o, "admin", g.Bool, true),
	}
	return p, o.Issues()
}

func TestObj_AccumulatesAllDefects(t *testing.T) {
	_, iss := decodePerson(t, map[string]any{"age": "old", "email": 3, "admin": nil})
	if len(iss) != 4 {
		t.Fatalf("want 4 issues, got %d: %v", len(iss), iss)
	}
	codes := map[string]string{}
	for _, it := range iss {
		codes[it.Path] = it.Code
	}
	want := map[string]string{
		"/name":  codebook.CodeMissingRequiredField,
		"/age":   codebook.CodeTypeMismatch,
		"/email": codebook.CodeTypeMismatch,
		"/admin": codebook.CodeTypeMismatch,
	}
	for path, code := range want {
		if codes[path] != code {
			t.Fatalf("%s: got %q, want %q (all: %v)", path, codes[path], code, iss)
		}
	}
}

func TestObj_OptionalAndDefault(t *testing.T) {
	p, iss := decodePerson(t, map[string]any{"name": "a", "age": 3, "email": nil})
	if len(iss) != 0 {
		t.Fatalf("unexpected issues %v", iss)
	}
	if p.Email != nil || !p.Admin {
		t.Fatalf("unexpected person %+v", p)
	}
}

func TestObj_RequiredNullIsMismatch(t *testing.T) {
	_, iss := decodePerson(t, map[string]any{"name": nil, "age": 1})
	if len(iss) != 1 || iss[0].Code != codebook.CodeTypeMismatch {
		t.Fatalf("issues: %v", iss)
	}
}

func TestObject_RejectsNonObject(t *testing.T) {
	if _, err := g.Object(codebook.Root(), []any{}); err == nil {
		t.Fatalf("array accepted as object")
	}
}
