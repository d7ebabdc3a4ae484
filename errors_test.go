package codebook_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	codebook "github.com/reoring/codebook"
)

func TestIssues_FatalAndWarnings(t *testing.T) {
	iss := codebook.Issues{
		codebook.MissingField(codebook.Root().Field("label")),
		codebook.Deprecated(codebook.Root().Field("missing"), "indicates_missing"),
		codebook.TypeMismatch(codebook.Root().Field("value_ranges").Index(2), "number", "string"),
	}
	if !iss.HasFatal() {
		t.Fatalf("expected fatal issues in %v", iss)
	}
	if got := len(iss.Fatal()); got != 2 {
		t.Fatalf("fatal = %d, want 2", got)
	}
	w := iss.Warnings()
	if len(w) != 1 || w[0].Code != codebook.CodeDeprecatedField {
		t.Fatalf("unexpected warnings: %v", w)
	}
	if iss.Err() == nil {
		t.Fatalf("Err should report fatal issues")
	}
	if w.Err() != nil {
		t.Fatalf("warnings alone must not be an error")
	}
	if got := iss[2].Path; got != "/value_ranges/2" {
		t.Fatalf("path = %q", got)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	var iss codebook.Issues
	for i := 0; i < 5; i++ {
		iss = append(iss, codebook.MissingField(codebook.Root().Field(fmt.Sprintf("f%d", i))))
	}
	msg := iss.Error()
	if !strings.Contains(msg, "missing_required_field at /f0") || !strings.Contains(msg, "(total 5)") {
		t.Fatalf("unexpected summary %q", msg)
	}
}

func TestAsIssues_AndToIssues(t *testing.T) {
	orig := codebook.Issues{codebook.MissingField(codebook.Root())}
	wrapped := fmt.Errorf("load: %w", orig)
	iss, ok := codebook.AsIssues(wrapped)
	if !ok || len(iss) != 1 {
		t.Fatalf("AsIssues failed on wrapped error: %v", wrapped)
	}
	var target codebook.Issues
	if !errors.As(wrapped, &target) {
		t.Fatalf("errors.As should see Issues")
	}

	plain := codebook.ToIssues(errors.New("boom"))
	if len(plain) != 1 || plain[0].Code != codebook.CodeParseError || !plain[0].Fatal() {
		t.Fatalf("plain error conversion: %v", plain)
	}
	if codebook.ToIssues(nil) != nil {
		t.Fatalf("nil error must convert to nil")
	}
}

func TestIssues_ByRuleAndCode(t *testing.T) {
	v := codebook.Violation(codebook.Root(), "detail")
	v.Rule = "LookupCoverage"
	iss := codebook.Issues{v, codebook.MissingField(codebook.Root())}
	if len(iss.ByRule("LookupCoverage")) != 1 {
		t.Fatalf("ByRule failed: %v", iss)
	}
	if len(iss.ByCode(codebook.CodeMissingRequiredField)) != 1 {
		t.Fatalf("ByCode failed: %v", iss)
	}
}

func TestPathRef_Escaping(t *testing.T) {
	p := codebook.Root().Field("value_lookup").Field("a/b~c").Index(3)
	if got, want := p.Pointer(), "/value_lookup/a~1b~0c/3"; got != want {
		t.Fatalf("pointer = %q, want %q", got, want)
	}
	if got := codebook.Root().Pointer(); got != "/" {
		t.Fatalf("root pointer = %q", got)
	}
	if got := codebook.At("/columns/X").Field("label").Pointer(); got != "/columns/X/label" {
		t.Fatalf("At pointer = %q", got)
	}
}

func TestUnresolvableUnion_NamesVariants(t *testing.T) {
	it := codebook.UnresolvableUnion(codebook.Root().Field("statistics"), "Statistics",
		[]string{"CategoricalStatistics", "NumericStatistics"})
	if it.Code != codebook.CodeUnresolvableUnion || it.Path != "/statistics" {
		t.Fatalf("unexpected issue %+v", it)
	}
	if !strings.Contains(it.Hint, "CategoricalStatistics") || !strings.Contains(it.Message, "NumericStatistics") {
		t.Fatalf("variants not named: %+v", it)
	}
}

func TestDuplicateCode_IsFatal(t *testing.T) {
	it := codebook.DuplicateCode(codebook.Root().Field("value_lookup").Field("1.0"), "1", "1")
	if it.Code != codebook.CodeDuplicateKey || it.Path != "/value_lookup/1.0" || !it.Fatal() {
		t.Fatalf("unexpected issue %+v", it)
	}
	if (codebook.Issues{it}).Err() == nil {
		t.Fatalf("duplicate code must reject the record")
	}
	if !strings.Contains(it.Hint, `"1"`) {
		t.Fatalf("hint should name the first key: %q", it.Hint)
	}
}
