package record

import (
	"context"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/dsl"
)

// Column describes one survey variable: its labels, value coding and the
// statistics reported for it.
type Column struct {
	Computed        bool   `json:"computed"`
	Label           string `json:"label"`
	SASVariableName string `json:"sas_variable_name"`

	SectionName      *string  `json:"section_name,omitempty"`
	SectionNumber    *float64 `json:"section_number,omitempty"`
	ModuleNumber     *float64 `json:"module_number,omitempty"`
	QuestionNumber   *float64 `json:"question_number,omitempty"`
	Column           *string  `json:"column,omitempty"`
	TypeOfVariable   *string  `json:"type_of_variable,omitempty"`
	QuestionPrologue *string  `json:"question_prologue,omitempty"`
	Question         *string  `json:"question,omitempty"`

	ValueRanges []ValueEntry `json:"value_ranges"`
	ValueLookup ValueLookup  `json:"value_lookup"`
	HTMLName    string       `json:"html_name"`

	Statistics               Statistics `json:"statistics,omitempty"`
	DemographicAnalysisScore *float64   `json:"demographic_analysis_score,omitempty"`
}

// Ranges returns the ValueRange entries of value_ranges, in order.
func (c Column) Ranges() []ValueRange {
	var out []ValueRange
	for _, e := range c.ValueRanges {
		if r, ok := e.(ValueRange); ok {
			out = append(out, r)
		}
	}
	return out
}

// ValidateColumn checks raw against the Column contract. Every field is
// examined; the returned Issues hold all defects and warnings found. The
// Column is usable only when the Issues carry nothing fatal.
func ValidateColumn(ctx context.Context, raw any) (Column, codebook.Issues) {
	return validate(ctx, raw, decodeColumn)
}

// ParseColumn is ValidateColumn reporting only fatal outcomes as an error.
func ParseColumn(ctx context.Context, raw any) (Column, error) {
	c, iss := ValidateColumn(ctx, raw)
	return c, iss.Err()
}

func decodeColumn(ctx context.Context, o *dsl.Obj) Column {
	legacy := codebook.PolicyFrom(ctx).AcceptLegacy
	return Column{
		Computed:        dsl.Req(o, "computed", dsl.Bool),
		Label:           dsl.Req(o, "label", dsl.String),
		SASVariableName: dsl.Req(o, "sas_variable_name", dsl.String),

		SectionName:      dsl.Opt(o, "section_name", dsl.String),
		SectionNumber:    dsl.Opt(o, "section_number", dsl.Number),
		ModuleNumber:     dsl.Opt(o, "module_number", dsl.Number),
		QuestionNumber:   dsl.Opt(o, "question_number", dsl.Number),
		Column:           dsl.Opt(o, "column", dsl.String),
		TypeOfVariable:   dsl.Opt(o, "type_of_variable", dsl.String),
		QuestionPrologue: dsl.Opt(o, "question_prologue", dsl.String),
		Question:         dsl.Opt(o, "question", dsl.String),

		ValueRanges: dsl.Req(o, "value_ranges", dsl.ListOf(valueEntryUnion(ctx).Parse)),
		ValueLookup: dsl.Req(o, "value_lookup", decodeValueLookup(legacy)),
		HTMLName:    dsl.Req(o, "html_name", dsl.String),

		Statistics:               statisticsOpt(ctx, o),
		DemographicAnalysisScore: dsl.Opt(o, "demographic_analysis_score", dsl.Number),
	}
}

// statisticsOpt keeps the interface nil when statistics is absent or null.
func statisticsOpt(ctx context.Context, o *dsl.Obj) Statistics {
	s := dsl.Opt(o, "statistics", statisticsUnion(ctx).Parse)
	if s == nil {
		return nil
	}
	return *s
}

// validate opens raw as an object and runs decode over it, collecting every
// issue the decoder recorded.
func validate[T any](ctx context.Context, raw any, decode func(context.Context, *dsl.Obj) T) (T, codebook.Issues) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	o, err := dsl.Object(codebook.Root(), raw)
	if err != nil {
		return zero, codebook.ToIssues(err)
	}
	v := decode(ctx, o)
	return v, o.Issues()
}
