package i18n

import (
	"strings"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	msg := T("type_mismatch", map[string]string{"expected": "number", "actual": "string"})
	if msg != "expected number, got string" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("missing_required_field", nil); msg == "required field missing" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return strings.ToUpper(code) }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if got := T("canceled", nil); got != "CANCELED" {
		t.Fatalf("got %q", got)
	}
}
