package jsonschema_test

import (
	"strings"
	"testing"

	js "github.com/reoring/codebook/jsonschema"
)

func TestObject_RequiredInDeclarationOrder(t *testing.T) {
	s := js.Object(
		js.Prop{Name: "b", Schema: js.String(), Required: true},
		js.Prop{Name: "a", Schema: js.Number()},
		js.Prop{Name: "c", Schema: js.Bool(), Required: true},
	)
	if strings.Join(s.Required, ",") != "b,c" {
		t.Fatalf("required: %v", s.Required)
	}
	if s.Properties["a"].Type != "number" {
		t.Fatalf("property a: %+v", s.Properties["a"])
	}
}

func TestNullableAndRange(t *testing.T) {
	n := js.Nullable(js.Range(js.Number(), 0, 1))
	if len(n.AnyOf) != 2 || n.AnyOf[1].Type != "null" {
		t.Fatalf("nullable: %+v", n)
	}
	if *n.AnyOf[0].Minimum != 0 || *n.AnyOf[0].Maximum != 1 {
		t.Fatalf("range lost")
	}
}

func TestMarshal_DoesNotMutate(t *testing.T) {
	s := js.MapOf(js.String())
	b, err := js.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if s.Schema != "" {
		t.Fatalf("Marshal set $schema on the input")
	}
	out := string(b)
	if !strings.Contains(out, `"$schema": "`+js.Draft+`"`) || !strings.Contains(out, `"additionalProperties"`) {
		t.Fatalf("output: %s", out)
	}
}

func TestMarshal_NestedIndentStaysFlat(t *testing.T) {
	leaf := js.Object(js.Prop{Name: "v", Schema: js.Nullable(js.Number()), Required: true})
	s := js.Object(js.Prop{Name: "a", Schema: js.ArrayOf(js.Object(
		js.Prop{Name: "b", Schema: js.MapOf(js.Object(
			js.Prop{Name: "c", Schema: &js.Schema{AnyOf: []*js.Schema{leaf, js.Null()}}},
		))},
	))})
	b, err := js.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) > 4096 {
		t.Fatalf("output is %d bytes", len(b))
	}
	for _, line := range strings.Split(string(b), "\n") {
		if indent := len(line) - len(strings.TrimLeft(line, " ")); indent > 64 {
			t.Fatalf("line indented by %d spaces: %q", indent, line)
		}
	}
}
