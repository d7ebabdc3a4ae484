package rules

import (
	"context"
	"fmt"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
)

// AnalysisRules returns the consistency rules applied to every
// DemographicAnalysis.
func AnalysisRules() Set[record.DemographicAnalysis] {
	return Set[record.DemographicAnalysis]{
		{Name: ConfusionMatrixShape, Severity: codebook.Error, Check: checkConfusionMatrix},
		{Name: SuccessErrorPairing, Severity: codebook.Error, Check: When(failed, checkErrorPresent)},
		{Name: SuccessErrorAdvisory, Severity: codebook.Warn, Check: When(succeeded, checkErrorAbsent)},
		{Name: ClassLabelUniqueness, Severity: codebook.Error, Check: checkClassLabels},
	}
}

// CheckDemographicAnalysis runs AnalysisRules against a.
func CheckDemographicAnalysis(ctx context.Context, a record.DemographicAnalysis) codebook.Issues {
	return AnalysisRules().Run(ctx, a)
}

// checkConfusionMatrix requires an n x n matrix where n is the number of
// class labels.
func checkConfusionMatrix(d Ctx, a record.DemographicAnalysis) []codebook.Issue {
	at := d.Ref.Field("confusion_matrix")
	n := len(a.ClassLabels)
	var out []codebook.Issue
	if rows := len(a.ConfusionMatrix); rows != n {
		out = append(out, codebook.Violation(at,
			fmt.Sprintf("matrix has %d rows but there are %d class labels", rows, n),
			"rows", rows, "labels", n))
	}
	for i, row := range a.ConfusionMatrix {
		if len(row) != len(a.ConfusionMatrix) {
			out = append(out, codebook.Violation(at.Index(i),
				fmt.Sprintf("row %d has %d cells, want %d", i, len(row), len(a.ConfusionMatrix)),
				"row", i, "cells", len(row), "expected", len(a.ConfusionMatrix)))
		}
	}
	return out
}

func failed(a record.DemographicAnalysis) bool    { return !a.Successful }
func succeeded(a record.DemographicAnalysis) bool { return a.Successful }

func checkErrorPresent(d Ctx, a record.DemographicAnalysis) []codebook.Issue {
	if !blank(a.ErrorMessage) {
		return nil
	}
	return []codebook.Issue{codebook.Violation(d.Ref.Field("error_message"),
		"unsuccessful analysis must carry an error_message")}
}

func checkErrorAbsent(d Ctx, a record.DemographicAnalysis) []codebook.Issue {
	if blank(a.ErrorMessage) {
		return nil
	}
	return []codebook.Issue{codebook.Violation(d.Ref.Field("error_message"),
		"successful analysis carries an error_message", "error_message", *a.ErrorMessage)}
}

func checkClassLabels(d Ctx, a record.DemographicAnalysis) []codebook.Issue {
	return UniqueStrings(d.Ref.Field("class_labels"), a.ClassLabels)
}
