package rules_test

import (
	"context"
	"testing"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
	"github.com/reoring/codebook/rules"
)

func baseAnalysis() record.DemographicAnalysis {
	return record.DemographicAnalysis{
		TargetColumn:    "Q1",
		Accuracy:        0.8,
		ConfusionMatrix: [][]int64{{3, 1}, {0, 4}},
		ClassLabels:     []string{"no", "yes"},
		Successful:      true,
	}
}

func TestAnalysisRules_Clean(t *testing.T) {
	if iss := rules.CheckDemographicAnalysis(context.Background(), baseAnalysis()); len(iss) != 0 {
		t.Fatalf("unexpected: %v", iss)
	}
}

func TestConfusionMatrixShape(t *testing.T) {
	a := baseAnalysis()
	a.ConfusionMatrix = [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	expectRule(t, rules.CheckDemographicAnalysis(context.Background(), a), rules.ConfusionMatrixShape, "/confusion_matrix", codebook.Error)

	a = baseAnalysis()
	a.ConfusionMatrix = [][]int64{{1, 0}, {0}}
	expectRule(t, rules.CheckDemographicAnalysis(context.Background(), a), rules.ConfusionMatrixShape, "/confusion_matrix/1", codebook.Error)
}

func TestSuccessErrorPairing(t *testing.T) {
	a := baseAnalysis()
	a.Successful = false
	expectRule(t, rules.CheckDemographicAnalysis(context.Background(), a), rules.SuccessErrorPairing, "/error_message", codebook.Error)

	a.ErrorMessage = s("  ")
	expectRule(t, rules.CheckDemographicAnalysis(context.Background(), a), rules.SuccessErrorPairing, "/error_message", codebook.Error)

	a.ErrorMessage = s("too few rows")
	if iss := rules.CheckDemographicAnalysis(context.Background(), a); len(iss) != 0 {
		t.Fatalf("unexpected: %v", iss)
	}
}

func TestSuccessErrorAdvisory(t *testing.T) {
	a := baseAnalysis()
	a.ErrorMessage = s("stale message")
	expectRule(t, rules.CheckDemographicAnalysis(context.Background(), a), rules.SuccessErrorAdvisory, "/error_message", codebook.Warn)
}

func TestClassLabelUniqueness(t *testing.T) {
	a := baseAnalysis()
	a.ClassLabels = []string{"yes", "yes"}
	expectRule(t, rules.CheckDemographicAnalysis(context.Background(), a), rules.ClassLabelUniqueness, "/class_labels/1", codebook.Error)
}
