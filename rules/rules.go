package rules

import (
	"context"
	"fmt"
	"math"
	"strings"

	codebook "github.com/reoring/codebook"
)

// Rule names. They key Policy.Severities and are stamped on every issue a
// rule produces.
const (
	ValueRangeArithmetic        = "ValueRangeArithmetic"
	LookupCoverage              = "LookupCoverage"
	CategoricalCountConsistency = "CategoricalCountConsistency"
	ResponseBudget              = "ResponseBudget"
	TopValuesAgreement          = "TopValuesAgreement"
	QuantileOrdering            = "QuantileOrdering"
	MissingCodeAccounting       = "MissingCodeAccounting"

	ConfusionMatrixShape = "ConfusionMatrixShape"
	SuccessErrorPairing  = "SuccessErrorPairing"
	SuccessErrorAdvisory = "SuccessErrorAdvisory"
	ClassLabelUniqueness = "ClassLabelUniqueness"

	RankMonotonicity    = "RankMonotonicity"
	RankImportanceOrder = "RankImportanceOrder"
	AnalysisCountBudget = "AnalysisCountBudget"
	SectionDisjointness = "SectionDisjointness"

	HTMLNameUniqueness   = "HTMLNameUniqueness"
	ColumnKeyMatchesName = "ColumnKeyMatchesName"
)

// UncoveredLookupKey is the hint LookupCoverage attaches to each lookup key
// that no value range covers.
const UncoveredLookupKey = "UncoveredLookupKey"

// Ctx is what a check sees besides the record itself.
type Ctx struct {
	Ctx context.Context
	Ref codebook.PathRef
}

// Check inspects v and describes every violation it finds. Checks never stop
// at the first violation.
type Check[T any] = func(d Ctx, v T) []codebook.Issue

// Rule is a named, independent consistency check.
type Rule[T any] struct {
	Name string
	// Severity applies unless Policy.Severities overrides it.
	Severity codebook.Severity
	Check    Check[T]
}

// Set is an ordered list of rules over one record type.
type Set[T any] []Rule[T]

// Run executes every enabled rule and aggregates their issues. Each issue is
// stamped with the consistency_violation code, the rule name and the
// severity resolved from the policy in ctx; rules resolved to Ignore are
// skipped.
func (s Set[T]) Run(ctx context.Context, v T) codebook.Issues {
	if ctx == nil {
		ctx = context.Background()
	}
	pol := codebook.PolicyFrom(ctx)
	d := Ctx{Ctx: ctx, Ref: codebook.Root()}
	var out codebook.Issues
	for _, r := range s {
		if r.Check == nil {
			continue
		}
		sev := pol.SeverityFor(r.Name, r.Severity)
		if sev == codebook.Ignore {
			continue
		}
		out = append(out, stamp(r.Name, sev, r.Check(d, v))...)
	}
	return out
}

// Names lists the rules of the set in order.
func (s Set[T]) Names() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Name
	}
	return out
}

// And executes all checks and concatenates their issues.
func And[T any](checks ...Check[T]) Check[T] {
	return func(d Ctx, v T) []codebook.Issue {
		var out []codebook.Issue
		for _, c := range checks {
			if c == nil {
				continue
			}
			out = append(out, c(d, v)...)
		}
		return out
	}
}

// When runs check only for records matching pred.
func When[T any](pred func(T) bool, check Check[T]) Check[T] {
	return func(d Ctx, v T) []codebook.Issue {
		if !pred(v) {
			return nil
		}
		return check(d, v)
	}
}

// UniqueStrings reports every element of keys that repeats an earlier one.
// Issues are placed at ref/<index> and carry the index of the first
// occurrence.
func UniqueStrings(ref codebook.PathRef, keys []string) []codebook.Issue {
	seen := make(map[string]int, len(keys))
	var out []codebook.Issue
	for i, k := range keys {
		if j, dup := seen[k]; dup {
			out = append(out, codebook.Violation(ref.Index(i),
				fmt.Sprintf("duplicate value %q (first at index %d)", k, j),
				"first", j, "dup", i, "key", k))
			continue
		}
		seen[k] = i
	}
	return out
}

func stamp(rule string, sev codebook.Severity, iss []codebook.Issue) codebook.Issues {
	out := make(codebook.Issues, 0, len(iss))
	for _, it := range iss {
		it.Code = codebook.CodeConsistencyViolation
		it.Rule = rule
		it.Severity = sev
		out = append(out, it)
	}
	return out
}

// same compares aggregated numbers, tolerating float noise from summation.
// Range arithmetic is exact and does not use it.
func same(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 1e-9*scale
}

func num(f float64) string { return fmt.Sprintf("%g", f) }

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }
