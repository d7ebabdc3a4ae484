package record

import (
	"context"

	json "github.com/goccy/go-json"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/dsl"
)

// Statistics is the reported summary of a column: NumericStatistics or
// CategoricalStatistics.
type Statistics interface {
	Base() StatisticsBase
	statistics()
}

// StatisticsBase holds the counters shared by both statistics variants.
type StatisticsBase struct {
	Count          float64  `json:"count"`
	NullCount      float64  `json:"null_count"`
	MissingCount   *float64 `json:"missing_count,omitempty"`
	UniqueCount    *float64 `json:"unique_count"`
	TotalResponses *float64 `json:"total_responses,omitempty"`
}

// NumericStatistics summarises a numeric column. Every summary field is
// emitted, null when unknown, because their presence identifies the variant.
type NumericStatistics struct {
	StatisticsBase
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"q25"`
	Median *float64 `json:"median"`
	Q75    *float64 `json:"q75"`
	Max    *float64 `json:"max"`
}

// CategoricalStatistics summarises a categorical column.
type CategoricalStatistics struct {
	StatisticsBase
	ValueCounts NumberMap  `json:"value_counts"`
	TopValues   []TopValue `json:"top_values"`
}

// TopValue is one of the most frequent values of a categorical column.
type TopValue struct {
	Value       string  `json:"value"`
	Count       float64 `json:"count"`
	Description *string `json:"description,omitempty"`
	IsMissing   *bool   `json:"is_missing,omitempty"`
}

func (s NumericStatistics) Base() StatisticsBase     { return s.StatisticsBase }
func (s CategoricalStatistics) Base() StatisticsBase { return s.StatisticsBase }
func (NumericStatistics) statistics()                {}
func (CategoricalStatistics) statistics()            {}

// Variant names used by the statistics union.
const (
	VariantCategoricalStatistics = "CategoricalStatistics"
	VariantNumericStatistics     = "NumericStatistics"
)

// NumberMap is an ordered string->number mapping.
type NumberMap []dsl.Entry[float64]

// Get returns the value stored under key.
func (m NumberMap) Get(key string) (float64, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

// Keys returns the keys in order.
func (m NumberMap) Keys() []string {
	out := make([]string, len(m))
	for i, e := range m {
		out[i] = e.Key
	}
	return out
}

// Values returns the values in order.
func (m NumberMap) Values() []float64 {
	out := make([]float64, len(m))
	for i, e := range m {
		out[i] = e.Value
	}
	return out
}

// MarshalJSON emits the mapping as an object, in order.
func (m NumberMap) MarshalJSON() ([]byte, error) {
	o := codebook.NewObject(len(m))
	for _, e := range m {
		o.Set(e.Key, e.Value)
	}
	return json.Marshal(o)
}

func numberMap(p codebook.PathRef, v any) (NumberMap, error) {
	entries, err := dsl.MapOf(dsl.Number)(p, v)
	return NumberMap(entries), err
}

// statisticsUnion chooses CategoricalStatistics iff value_counts and
// top_values are both present, otherwise NumericStatistics when the base
// counters are numbers or any of mean, std, min or max is declared (null
// allowed). Summary fields are all optional.
func statisticsUnion(ctx context.Context) dsl.Union[Statistics] {
	legacy := codebook.PolicyFrom(ctx).AcceptLegacy
	return dsl.Union[Statistics]{
		Name: "Statistics",
		Variants: []dsl.Variant[Statistics]{
			{
				Name: VariantCategoricalStatistics,
				Requires: []dsl.Requirement{
					{Key: "value_counts", Shape: dsl.ShapeObject},
					{Key: "top_values", Shape: dsl.ShapeArray},
				},
				Decode: func(o *dsl.Obj) Statistics {
					return CategoricalStatistics{
						StatisticsBase: decodeStatisticsBase(o, legacy),
						ValueCounts:    dsl.Req(o, "value_counts", numberMap),
						TopValues:      dsl.Req(o, "top_values", dsl.ListOf(topValue)),
					}
				},
			},
			{
				Name: VariantNumericStatistics,
				Requires: []dsl.Requirement{
					{Key: "count", Shape: dsl.ShapeNumber},
					{Key: "null_count", Shape: dsl.ShapeNumber},
				},
				Signature: []string{"mean", "std", "min", "max"},
				Decode: func(o *dsl.Obj) Statistics {
					return NumericStatistics{
						StatisticsBase: decodeStatisticsBase(o, legacy),
						Mean:           dsl.Opt(o, "mean", dsl.Number),
						Std:            dsl.Opt(o, "std", dsl.Number),
						Min:            dsl.Opt(o, "min", dsl.Number),
						Q25:            dsl.Opt(o, "q25", dsl.Number),
						Median:         dsl.Opt(o, "median", dsl.Number),
						Q75:            dsl.Opt(o, "q75", dsl.Number),
						Max:            dsl.Opt(o, "max", dsl.Number),
					}
				},
			},
		},
	}
}

func decodeStatisticsBase(o *dsl.Obj, legacy bool) StatisticsBase {
	b := StatisticsBase{
		Count:       dsl.Req(o, "count", dsl.Number),
		NullCount:   dsl.Req(o, "null_count", dsl.Number),
		UniqueCount: dsl.Opt(o, "unique_count", dsl.Number),
	}
	for _, f := range []struct {
		key string
		dst **float64
	}{
		{"missing_count", &b.MissingCount},
		{"total_responses", &b.TotalResponses},
	} {
		if legacy && !o.Has(f.key) {
			o.Add(codebook.Deprecated(o.At(f.key), f.key))
			continue
		}
		n := dsl.Req(o, f.key, dsl.Number)
		if o.Has(f.key) {
			*f.dst = &n
		}
	}
	return b
}

func topValue(p codebook.PathRef, v any) (TopValue, error) {
	o, err := dsl.Object(p, v)
	if err != nil {
		return TopValue{}, err
	}
	tv := TopValue{
		Value:       dsl.Req(o, "value", dsl.String),
		Count:       dsl.Req(o, "count", dsl.Number),
		Description: dsl.Opt(o, "description", dsl.String),
		IsMissing:   dsl.Opt(o, "is_missing", dsl.Bool),
	}
	if iss := o.Issues(); len(iss) > 0 {
		return tv, iss
	}
	return tv, nil
}

// SelectStatistics reports which variant a raw statistics object resolves to
// ("" when unresolvable). It performs no field validation.
func SelectStatistics(v any) string { return statisticsUnion(context.Background()).Select(v) }
