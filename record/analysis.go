package record

import (
	"context"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/dsl"
)

// FeatureWeight is the importance a classifier assigned to one feature.
type FeatureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// DemographicAnalysis is the reported outcome of one classifier run that
// predicts TargetColumn from demographic features.
type DemographicAnalysis struct {
	TargetColumn string  `json:"target_column"`
	Accuracy     float64 `json:"accuracy"`

	ClassificationReport *codebook.Object `json:"classification_report"`
	ModelParameters      *codebook.Object `json:"model_parameters"`
	AnalysisMetadata     *codebook.Object `json:"analysis_metadata"`

	FeatureImportance []FeatureWeight `json:"feature_importance"`
	ConfusionMatrix   [][]int64       `json:"confusion_matrix"`
	ClassLabels       []string        `json:"class_labels"`

	Successful   bool    `json:"successful"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// ValidateDemographicAnalysis checks raw against the DemographicAnalysis
// contract, accumulating every defect.
func ValidateDemographicAnalysis(ctx context.Context, raw any) (DemographicAnalysis, codebook.Issues) {
	return validate(ctx, raw, decodeDemographicAnalysis)
}

// ParseDemographicAnalysis is ValidateDemographicAnalysis reporting only
// fatal outcomes as an error.
func ParseDemographicAnalysis(ctx context.Context, raw any) (DemographicAnalysis, error) {
	a, iss := ValidateDemographicAnalysis(ctx, raw)
	return a, iss.Err()
}

func decodeDemographicAnalysis(_ context.Context, o *dsl.Obj) DemographicAnalysis {
	return DemographicAnalysis{
		TargetColumn: dsl.Req(o, "target_column", dsl.String),
		Accuracy:     dsl.Req(o, "accuracy", dsl.UnitInterval),

		ClassificationReport: dsl.Req(o, "classification_report", dsl.Opaque),
		ModelParameters:      dsl.Req(o, "model_parameters", dsl.Opaque),
		AnalysisMetadata:     dsl.Req(o, "analysis_metadata", dsl.Opaque),

		FeatureImportance: dsl.Req(o, "feature_importance", dsl.ListOf(featureWeight)),
		ConfusionMatrix:   dsl.Req(o, "confusion_matrix", dsl.ListOf(dsl.ListOf(dsl.NonNegInt))),
		ClassLabels:       dsl.Req(o, "class_labels", dsl.ListOf(dsl.String)),

		Successful:   dsl.Default(o, "successful", dsl.Bool, true),
		ErrorMessage: dsl.Opt(o, "error_message", dsl.String),
	}
}

func featureWeight(p codebook.PathRef, v any) (FeatureWeight, error) {
	o, err := dsl.Object(p, v)
	if err != nil {
		return FeatureWeight{}, err
	}
	fw := FeatureWeight{
		Feature:    dsl.Req(o, "feature", dsl.String),
		Importance: dsl.Req(o, "importance", dsl.Number),
	}
	return fw, o.Err()
}
