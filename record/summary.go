package record

import (
	"context"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/dsl"
)

// TopFeature is one ranked entry of a FeatureImportanceSummary.
type TopFeature struct {
	Feature           string  `json:"feature"`
	AverageImportance float64 `json:"average_importance"`
	Frequency         float64 `json:"frequency"`
	Rank              int64   `json:"rank"`
}

// FeatureImportanceSummary aggregates feature importances and accuracies
// across the demographic analyses of a survey.
type FeatureImportanceSummary struct {
	TotalAnalyses      float64 `json:"total_analyses"`
	SuccessfulAnalyses float64 `json:"successful_analyses"`
	AverageAccuracy    float64 `json:"average_accuracy"`

	TopFeatures          []TopFeature `json:"top_features"`
	FeatureFrequency     NumberMap    `json:"feature_frequency"`
	AccuracyDistribution NumberMap    `json:"accuracy_distribution"`

	SectionsAnalyzed []string `json:"sections_analyzed"`
	SectionsExcluded []string `json:"sections_excluded"`

	AnalysisMetadata *codebook.Object `json:"analysis_metadata"`
}

// ValidateFeatureImportanceSummary checks raw against the summary contract,
// accumulating every defect.
func ValidateFeatureImportanceSummary(ctx context.Context, raw any) (FeatureImportanceSummary, codebook.Issues) {
	return validate(ctx, raw, decodeSummary)
}

// ParseFeatureImportanceSummary is ValidateFeatureImportanceSummary reporting
// only fatal outcomes as an error.
func ParseFeatureImportanceSummary(ctx context.Context, raw any) (FeatureImportanceSummary, error) {
	s, iss := ValidateFeatureImportanceSummary(ctx, raw)
	return s, iss.Err()
}

func decodeSummary(_ context.Context, o *dsl.Obj) FeatureImportanceSummary {
	return FeatureImportanceSummary{
		TotalAnalyses:      dsl.Req(o, "total_analyses", dsl.Number),
		SuccessfulAnalyses: dsl.Req(o, "successful_analyses", dsl.Number),
		AverageAccuracy:    dsl.Req(o, "average_accuracy", dsl.Number),

		TopFeatures:          dsl.Req(o, "top_features", dsl.ListOf(topFeature)),
		FeatureFrequency:     dsl.Req(o, "feature_frequency", numberMap),
		AccuracyDistribution: dsl.Req(o, "accuracy_distribution", numberMap),

		SectionsAnalyzed: dsl.Req(o, "sections_analyzed", dsl.ListOf(dsl.String)),
		SectionsExcluded: dsl.Req(o, "sections_excluded", dsl.ListOf(dsl.String)),

		AnalysisMetadata: dsl.Req(o, "analysis_metadata", dsl.Opaque),
	}
}

func topFeature(p codebook.PathRef, v any) (TopFeature, error) {
	o, err := dsl.Object(p, v)
	if err != nil {
		return TopFeature{}, err
	}
	tf := TopFeature{
		Feature:           dsl.Req(o, "feature", dsl.String),
		AverageImportance: dsl.Req(o, "average_importance", dsl.Number),
		Frequency:         dsl.Req(o, "frequency", dsl.Number),
		Rank:              dsl.Req(o, "rank", dsl.Integer),
	}
	return tf, o.Err()
}
