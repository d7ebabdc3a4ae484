package record

import (
	js "github.com/reoring/codebook/jsonschema"
)

func req(name string, s *js.Schema) js.Prop { return js.Prop{Name: name, Schema: s, Required: true} }
func opt(name string, s *js.Schema) js.Prop { return js.Prop{Name: name, Schema: js.Nullable(s)} }

func valueDefProps() []js.Prop {
	return []js.Prop{
		req("description", js.String()),
		{Name: "indicates_missing", Schema: js.Bool()},
	}
}

func statisticsBaseProps() []js.Prop {
	return []js.Prop{
		req("count", js.Number()),
		req("null_count", js.Number()),
		req("missing_count", js.Number()),
		opt("unique_count", js.Number()),
		req("total_responses", js.Number()),
	}
}

// ColumnSchema describes a Column document. Unions are exported as anyOf.
// A ValueDef excludes the range keys, since any of them commits an entry to
// ValueRange.
func ColumnSchema() *js.Schema {
	valueRange := js.Object(append(valueDefProps(),
		req("start", js.Number()),
		req("end", js.Number()),
		req("count", js.Number()),
	)...)
	valueRange.Title = VariantValueRange
	valueDef := js.Object(valueDefProps()...)
	valueDef.Title = VariantValueDef
	valueDef.Not = &js.Schema{AnyOf: []*js.Schema{
		{Required: []string{"start"}},
		{Required: []string{"end"}},
		{Required: []string{"count"}},
	}}

	topValue := js.Object(
		req("value", js.String()),
		req("count", js.Number()),
		js.Prop{Name: "description", Schema: js.String()},
		js.Prop{Name: "is_missing", Schema: js.Bool()},
	)
	categorical := js.Object(append(statisticsBaseProps(),
		req("value_counts", js.MapOf(js.Number())),
		req("top_values", js.ArrayOf(topValue)),
	)...)
	categorical.Title = VariantCategoricalStatistics
	numeric := js.Object(append(statisticsBaseProps(),
		opt("mean", js.Number()),
		opt("std", js.Number()),
		opt("min", js.Number()),
		opt("q25", js.Number()),
		opt("median", js.Number()),
		opt("q75", js.Number()),
		opt("max", js.Number()),
	)...)
	numeric.Title = VariantNumericStatistics

	lookup := js.MapOf(js.String())
	lookup.PropertyNames = &js.Schema{Description: `"null" or a finite number`}

	s := js.Object(
		req("computed", js.Bool()),
		req("label", js.String()),
		req("sas_variable_name", js.String()),
		opt("section_name", js.String()),
		opt("section_number", js.Number()),
		opt("module_number", js.Number()),
		opt("question_number", js.Number()),
		opt("column", js.String()),
		opt("type_of_variable", js.String()),
		opt("question_prologue", js.String()),
		opt("question", js.String()),
		req("value_ranges", js.ArrayOf(&js.Schema{AnyOf: []*js.Schema{valueRange, valueDef}})),
		req("value_lookup", lookup),
		req("html_name", js.String()),
		opt("statistics", &js.Schema{AnyOf: []*js.Schema{categorical, numeric}}),
		opt("demographic_analysis_score", js.Number()),
	)
	s.Title = "Column"
	return s
}

// DemographicAnalysisSchema describes a DemographicAnalysis document.
func DemographicAnalysisSchema() *js.Schema {
	s := js.Object(
		req("target_column", js.String()),
		req("accuracy", js.Range(js.Number(), 0, 1)),
		req("classification_report", js.Open()),
		req("model_parameters", js.Open()),
		req("analysis_metadata", js.Open()),
		req("feature_importance", js.ArrayOf(js.Object(
			req("feature", js.String()),
			req("importance", js.Number()),
		))),
		req("confusion_matrix", js.ArrayOf(js.ArrayOf(&js.Schema{Type: "integer", Minimum: new(float64)}))),
		req("class_labels", &js.Schema{Type: "array", Items: js.String(), UniqueItems: true}),
		js.Prop{Name: "successful", Schema: &js.Schema{Type: "boolean", Default: true}},
		opt("error_message", js.String()),
	)
	s.Title = "DemographicAnalysis"
	return s
}

// FeatureImportanceSummarySchema describes the summary document.
func FeatureImportanceSummarySchema() *js.Schema {
	s := js.Object(
		req("total_analyses", js.Number()),
		req("successful_analyses", js.Number()),
		req("average_accuracy", js.Number()),
		req("top_features", js.ArrayOf(js.Object(
			req("feature", js.String()),
			req("average_importance", js.Number()),
			req("frequency", js.Number()),
			req("rank", js.Integer()),
		))),
		req("feature_frequency", js.MapOf(js.Number())),
		req("accuracy_distribution", js.MapOf(js.Number())),
		req("sections_analyzed", js.ArrayOf(js.String())),
		req("sections_excluded", js.ArrayOf(js.String())),
		req("analysis_metadata", js.Open()),
	)
	s.Title = "FeatureImportanceSummary"
	return s
}
