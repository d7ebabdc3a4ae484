package record_test

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
)

const validSummary = `{
  "total_analyses": 4,
  "successful_analyses": 3,
  "average_accuracy": 0.71,
  "top_features": [
    {"feature": "AGEGRP", "average_importance": 0.4, "frequency": 3, "rank": 1},
    {"feature": "REGION", "average_importance": 0.3, "frequency": 2, "rank": 2}
  ],
  "feature_frequency": {"AGEGRP": 3, "REGION": 2},
  "accuracy_distribution": {"0.6-0.7": 1, "0.7-0.8": 2},
  "sections_analyzed": ["Health", "Work"],
  "sections_excluded": ["Demographics"],
  "analysis_metadata": {"generated_by": "feature_importance", "runs": [1, 2]}
}`

func TestValidateFeatureImportanceSummary_Valid(t *testing.T) {
	s, iss := record.ValidateFeatureImportanceSummary(context.Background(), tree(t, validSummary))
	if len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if len(s.TopFeatures) != 2 || s.TopFeatures[1].Rank != 2 {
		t.Fatalf("top features: %+v", s.TopFeatures)
	}
	if f, ok := s.FeatureFrequency.Get("REGION"); !ok || f != 2 {
		t.Fatalf("feature_frequency: %v", s.FeatureFrequency)
	}
	if s.AccuracyDistribution.Keys()[0] != "0.6-0.7" {
		t.Fatalf("accuracy_distribution order lost")
	}
}

func TestValidateFeatureImportanceSummary_RankMustBeInteger(t *testing.T) {
	raw := tree(t, validSummary).(*codebook.Object)
	raw.Set("top_features", tree(t, `[{"feature": "A", "average_importance": 0.1, "frequency": 1, "rank": 1.5}]`))
	_, err := record.ParseFeatureImportanceSummary(context.Background(), raw)
	iss, _ := codebook.AsIssues(err)
	only(t, iss, codebook.CodeTypeMismatch, "/top_features/0/rank")
}

func TestValidateFeatureImportanceSummary_MissingEverything(t *testing.T) {
	_, iss := record.ValidateFeatureImportanceSummary(context.Background(), tree(t, `{}`))
	if len(iss) != 9 || len(iss.ByCode(codebook.CodeMissingRequiredField)) != 9 {
		t.Fatalf("want 9 missing fields, got %v", iss)
	}
}

func TestFeatureImportanceSummary_RoundTrip(t *testing.T) {
	s, iss := record.ValidateFeatureImportanceSummary(context.Background(), tree(t, validSummary))
	if len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
	b1, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s2, iss := record.ValidateFeatureImportanceSummary(context.Background(), tree(t, string(b1)))
	if len(iss) != 0 {
		t.Fatalf("re-validation: %v (%s)", iss, b1)
	}
	b2, _ := json.Marshal(s2)
	if string(b1) != string(b2) {
		t.Fatalf("round trip changed output:\n%s\n%s", b1, b2)
	}
	if keys := s2.AnalysisMetadata.Keys(); len(keys) != 2 || keys[0] != "generated_by" {
		t.Fatalf("analysis_metadata: %v", keys)
	}
	if s2.AccuracyDistribution.Keys()[1] != "0.7-0.8" || s2.TopFeatures[1].Rank != 2 {
		t.Fatalf("fields changed: %+v", s2)
	}
}
