package rules_test

import (
	"context"
	"testing"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/rules"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func withSeverities(m map[string]codebook.Severity) context.Context {
	pol := codebook.DefaultPolicy()
	pol.Severities = m
	return codebook.WithPolicy(context.Background(), pol)
}

func expectRule(t *testing.T, iss codebook.Issues, rule, path string, sev codebook.Severity) {
	t.Helper()
	if len(iss) != 1 {
		t.Fatalf("want one issue, got %d: %v", len(iss), iss)
	}
	it := iss[0]
	if it.Code != codebook.CodeConsistencyViolation || it.Rule != rule || it.Path != path || it.Severity != sev {
		t.Fatalf("want %s at %s (%s), got %s severity=%s", rule, path, sev, it, it.Severity)
	}
}

func TestSet_StampsAndSkipsIgnored(t *testing.T) {
	set := rules.Set[int]{
		{Name: "Even", Severity: codebook.Error, Check: func(d rules.Ctx, v int) []codebook.Issue {
			if v%2 == 0 {
				return nil
			}
			return []codebook.Issue{codebook.Violation(d.Ref, "odd")}
		}},
		{Name: "Small", Severity: codebook.Warn, Check: func(d rules.Ctx, v int) []codebook.Issue {
			if v < 10 {
				return nil
			}
			return []codebook.Issue{codebook.Violation(d.Ref, "large")}
		}},
	}
	iss := set.Run(context.Background(), 11)
	if len(iss) != 2 || iss[0].Rule != "Even" || iss[1].Rule != "Small" {
		t.Fatalf("issues: %v", iss)
	}
	if !iss[0].Fatal() || iss[1].Fatal() {
		t.Fatalf("default severities not applied: %v", iss)
	}

	iss = set.Run(withSeverities(map[string]codebook.Severity{"Even": codebook.Ignore, "Small": codebook.Error}), 11)
	expectRule(t, iss, "Small", "/", codebook.Error)

	if names := set.Names(); len(names) != 2 || names[1] != "Small" {
		t.Fatalf("names: %v", names)
	}
}

func TestAndWhen(t *testing.T) {
	one := func(d rules.Ctx, v int) []codebook.Issue { return []codebook.Issue{codebook.Violation(d.Ref, "x")} }
	c := rules.And(one, nil, rules.When(func(v int) bool { return v > 0 }, one))
	if got := len(c(rules.Ctx{Ref: codebook.Root()}, 0)); got != 1 {
		t.Fatalf("When should skip: %d", got)
	}
	if got := len(c(rules.Ctx{Ref: codebook.Root()}, 1)); got != 2 {
		t.Fatalf("And should run both: %d", got)
	}
}

func TestUniqueStrings(t *testing.T) {
	iss := rules.UniqueStrings(codebook.Root().Field("k"), []string{"a", "b", "a", "a"})
	if len(iss) != 2 || iss[0].Path != "/k/2" || iss[1].Path != "/k/3" {
		t.Fatalf("issues: %v", iss)
	}
	if iss[1].Params["first"] != 0 {
		t.Fatalf("first occurrence: %v", iss[1].Params)
	}
}
