package rules

import (
	"context"
	"fmt"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
)

// SummaryRules returns the consistency rules applied to the
// FeatureImportanceSummary.
func SummaryRules() Set[record.FeatureImportanceSummary] {
	return Set[record.FeatureImportanceSummary]{
		{Name: RankMonotonicity, Severity: codebook.Error, Check: checkRanks},
		{Name: RankImportanceOrder, Severity: codebook.Warn, Check: checkImportanceOrder},
		{Name: AnalysisCountBudget, Severity: codebook.Error, Check: checkAnalysisCounts},
		{Name: SectionDisjointness, Severity: codebook.Warn, Check: checkSections},
	}
}

// CheckSummary runs SummaryRules against s.
func CheckSummary(ctx context.Context, s record.FeatureImportanceSummary) codebook.Issues {
	return SummaryRules().Run(ctx, s)
}

// checkRanks requires ranks to be the 1-based positions 1, 2, 3...
func checkRanks(d Ctx, s record.FeatureImportanceSummary) []codebook.Issue {
	var out []codebook.Issue
	for i, f := range s.TopFeatures {
		if want := int64(i + 1); f.Rank != want {
			out = append(out, codebook.Violation(d.Ref.Field("top_features").Index(i).Field("rank"),
				fmt.Sprintf("rank %d at position %d, want %d", f.Rank, i, want),
				"rank", f.Rank, "expected", want))
		}
	}
	return out
}

func checkImportanceOrder(d Ctx, s record.FeatureImportanceSummary) []codebook.Issue {
	var out []codebook.Issue
	for i := 1; i < len(s.TopFeatures); i++ {
		prev, cur := s.TopFeatures[i-1], s.TopFeatures[i]
		if cur.AverageImportance > prev.AverageImportance && !same(cur.AverageImportance, prev.AverageImportance) {
			out = append(out, codebook.Violation(d.Ref.Field("top_features").Index(i).Field("average_importance"),
				fmt.Sprintf("%q ranks below %q but has higher average_importance (%s > %s)",
					cur.Feature, prev.Feature, num(cur.AverageImportance), num(prev.AverageImportance)),
				"feature", cur.Feature, "previous", prev.Feature))
		}
	}
	return out
}

func checkAnalysisCounts(d Ctx, s record.FeatureImportanceSummary) []codebook.Issue {
	if s.SuccessfulAnalyses <= s.TotalAnalyses {
		return nil
	}
	return []codebook.Issue{codebook.Violation(d.Ref.Field("successful_analyses"),
		fmt.Sprintf("successful_analyses %s exceeds total_analyses %s", num(s.SuccessfulAnalyses), num(s.TotalAnalyses)),
		"successful_analyses", s.SuccessfulAnalyses, "total_analyses", s.TotalAnalyses)}
}

func checkSections(d Ctx, s record.FeatureImportanceSummary) []codebook.Issue {
	analyzed := make(map[string]struct{}, len(s.SectionsAnalyzed))
	for _, name := range s.SectionsAnalyzed {
		analyzed[name] = struct{}{}
	}
	var out []codebook.Issue
	for i, name := range s.SectionsExcluded {
		if _, ok := analyzed[name]; ok {
			out = append(out, codebook.Violation(d.Ref.Field("sections_excluded").Index(i),
				fmt.Sprintf("section %q is both analyzed and excluded", name), "section", name))
		}
	}
	return out
}
