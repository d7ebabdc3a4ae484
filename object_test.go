package codebook_test

import (
	"testing"

	codebook "github.com/reoring/codebook"
)

func TestObject_KeepsInsertionOrder(t *testing.T) {
	o := codebook.NewObject(0)
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("b", 3)
	if got := o.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("keys = %v", got)
	}
	if v, _ := o.Get("b"); v != 3 {
		t.Fatalf("b = %v", v)
	}
	b, err := o.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"b":3,"a":2}` {
		t.Fatalf("json = %s", b)
	}
}

func TestAsObject_FromMapIsSorted(t *testing.T) {
	o, ok := codebook.AsObject(map[string]any{"z": nil, "m": true, "a": "x"})
	if !ok {
		t.Fatalf("map should convert")
	}
	if got := o.Keys(); got[0] != "a" || got[1] != "m" || got[2] != "z" {
		t.Fatalf("keys = %v", got)
	}
	if !o.Has("z") {
		t.Fatalf("null value must count as present")
	}
	if _, ok := codebook.AsObject([]any{}); ok {
		t.Fatalf("array is not an object")
	}
	var nilObj *codebook.Object
	if _, ok := codebook.AsObject(nilObj); ok {
		t.Fatalf("nil object is not an object")
	}
}
