package record_test

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
)

const validAnalysis = `{
  "target_column": "Q12",
  "accuracy": 0.82,
  "classification_report": {"yes": {"precision": 0.8}},
  "model_parameters": {"n_estimators": 100},
  "analysis_metadata": {"section": "Health"},
  "feature_importance": [{"feature": "AGEGRP", "importance": 0.4}, {"feature": "REGION", "importance": 0.2}],
  "confusion_matrix": [[5, 1], [2, 7]],
  "class_labels": ["no", "yes"],
  "error_message": null
}`

func TestValidateDemographicAnalysis_Valid(t *testing.T) {
	a, iss := record.ValidateDemographicAnalysis(context.Background(), tree(t, validAnalysis))
	if len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if !a.Successful {
		t.Fatalf("successful defaults to true")
	}
	if a.ErrorMessage != nil {
		t.Fatalf("null error_message should be nil")
	}
	if len(a.ConfusionMatrix) != 2 || a.ConfusionMatrix[1][1] != 7 {
		t.Fatalf("confusion matrix: %v", a.ConfusionMatrix)
	}
	if keys := a.ModelParameters.Keys(); len(keys) != 1 || keys[0] != "n_estimators" {
		t.Fatalf("model_parameters kept opaque: %v", keys)
	}
	if a.FeatureImportance[0].Feature != "AGEGRP" {
		t.Fatalf("feature order: %+v", a.FeatureImportance)
	}
}

func TestValidateDemographicAnalysis_Defects(t *testing.T) {
	raw := tree(t, `{
	  "target_column": "Q12",
	  "accuracy": 1.2,
	  "classification_report": [],
	  "model_parameters": {},
	  "analysis_metadata": {},
	  "feature_importance": [{"feature": "A"}],
	  "confusion_matrix": [[1, -1], [0.5, 2]],
	  "class_labels": ["a", "b"],
	  "successful": "yes"
	}`)
	_, iss := record.ValidateDemographicAnalysis(context.Background(), raw)
	want := map[string]string{
		"/accuracy":                        codebook.CodeTypeMismatch,
		"/classification_report":           codebook.CodeTypeMismatch,
		"/feature_importance/0/importance": codebook.CodeMissingRequiredField,
		"/confusion_matrix/0/1":            codebook.CodeTypeMismatch,
		"/confusion_matrix/1/0":            codebook.CodeTypeMismatch,
		"/successful":                      codebook.CodeTypeMismatch,
	}
	if len(iss) != len(want) {
		t.Fatalf("want %d issues, got %d: %v", len(want), len(iss), iss)
	}
	for _, it := range iss {
		if want[it.Path] != it.Code {
			t.Fatalf("unexpected %s", it)
		}
	}
}

func TestParseDemographicAnalysis_NonObject(t *testing.T) {
	_, err := record.ParseDemographicAnalysis(context.Background(), tree(t, `[1]`))
	iss, ok := codebook.AsIssues(err)
	if !ok {
		t.Fatalf("want issues, got %v", err)
	}
	only(t, iss, codebook.CodeTypeMismatch, "/")
}

func TestDemographicAnalysis_RoundTrip(t *testing.T) {
	a, iss := record.ValidateDemographicAnalysis(context.Background(), tree(t, validAnalysis))
	if len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
	b1, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	a2, iss := record.ValidateDemographicAnalysis(context.Background(), tree(t, string(b1)))
	if len(iss) != 0 {
		t.Fatalf("re-validation: %v (%s)", iss, b1)
	}
	b2, _ := json.Marshal(a2)
	if string(b1) != string(b2) {
		t.Fatalf("round trip changed output:\n%s\n%s", b1, b2)
	}
	yes, ok := a2.ClassificationReport.Get("yes")
	if !ok {
		t.Fatalf("classification_report lost: %s", b1)
	}
	if _, ok := yes.(*codebook.Object).Get("precision"); !ok {
		t.Fatalf("nested report entry lost: %s", b1)
	}
	if !a2.Successful || a2.ConfusionMatrix[0][1] != 1 {
		t.Fatalf("fields changed: %+v", a2)
	}
}
