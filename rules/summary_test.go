package rules_test

import (
	"context"
	"testing"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
	"github.com/reoring/codebook/rules"
)

func baseSummary() record.FeatureImportanceSummary {
	return record.FeatureImportanceSummary{
		TotalAnalyses:      3,
		SuccessfulAnalyses: 2,
		TopFeatures: []record.TopFeature{
			{Feature: "A", AverageImportance: 0.5, Rank: 1},
			{Feature: "B", AverageImportance: 0.3, Rank: 2},
			{Feature: "C", AverageImportance: 0.3, Rank: 3},
		},
		SectionsAnalyzed: []string{"Health"},
		SectionsExcluded: []string{"Demographics"},
	}
}

func TestSummaryRules_Clean(t *testing.T) {
	if iss := rules.CheckSummary(context.Background(), baseSummary()); len(iss) != 0 {
		t.Fatalf("unexpected: %v", iss)
	}
}

func TestRankMonotonicity(t *testing.T) {
	sm := baseSummary()
	sm.TopFeatures[2].Rank = 2
	expectRule(t, rules.CheckSummary(context.Background(), sm), rules.RankMonotonicity, "/top_features/2/rank", codebook.Error)
}

func TestRankImportanceOrder(t *testing.T) {
	sm := baseSummary()
	sm.TopFeatures[2].AverageImportance = 0.4
	expectRule(t, rules.CheckSummary(context.Background(), sm), rules.RankImportanceOrder, "/top_features/2/average_importance", codebook.Warn)
}

func TestAnalysisCountBudget(t *testing.T) {
	sm := baseSummary()
	sm.SuccessfulAnalyses = 4
	expectRule(t, rules.CheckSummary(context.Background(), sm), rules.AnalysisCountBudget, "/successful_analyses", codebook.Error)
}

func TestSectionDisjointness(t *testing.T) {
	sm := baseSummary()
	sm.SectionsExcluded = append(sm.SectionsExcluded, "Health")
	expectRule(t, rules.CheckSummary(context.Background(), sm), rules.SectionDisjointness, "/sections_excluded/1", codebook.Warn)
}
