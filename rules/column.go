package rules

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
)

// ColumnRules returns the consistency rules applied to every Column.
func ColumnRules() Set[record.Column] {
	return Set[record.Column]{
		{Name: ValueRangeArithmetic, Severity: codebook.Error, Check: checkValueRangeArithmetic},
		{Name: LookupCoverage, Severity: codebook.Warn, Check: checkLookupCoverage},
		{Name: CategoricalCountConsistency, Severity: codebook.Warn, Check: onCategorical(checkCategoricalCount)},
		{Name: ResponseBudget, Severity: codebook.Warn, Check: checkResponseBudget},
		{Name: TopValuesAgreement, Severity: codebook.Warn, Check: onCategorical(checkTopValues)},
		{Name: QuantileOrdering, Severity: codebook.Warn, Check: checkQuantileOrdering},
		{Name: MissingCodeAccounting, Severity: codebook.Warn, Check: checkMissingCodeAccounting},
	}
}

// CheckColumn runs ColumnRules against c.
func CheckColumn(ctx context.Context, c record.Column) codebook.Issues {
	return ColumnRules().Run(ctx, c)
}

func checkValueRangeArithmetic(d Ctx, c record.Column) []codebook.Issue {
	var out []codebook.Issue
	for i, e := range c.ValueRanges {
		r, ok := e.(record.ValueRange)
		if !ok {
			continue
		}
		at := d.Ref.Field("value_ranges").Index(i)
		if r.Start > r.End {
			out = append(out, codebook.Violation(at.Field("start"),
				fmt.Sprintf("start %s exceeds end %s", num(r.Start), num(r.End)),
				"start", r.Start, "end", r.End))
		}
		if r.Count != r.Width() {
			out = append(out, codebook.Violation(at.Field("count"),
				fmt.Sprintf("count %s does not span %s..%s (want %s)", num(r.Count), num(r.Start), num(r.End), num(r.Width())),
				"count", r.Count, "expected", r.Width()))
		}
	}
	return out
}

// checkLookupCoverage requires every non-null lookup code to fall in a
// ValueRange. A ValueDef carries no numeric code, so it only accounts for the
// null slot.
func checkLookupCoverage(d Ctx, c record.Column) []codebook.Issue {
	ranges := c.Ranges()
	var out []codebook.Issue
	for _, e := range c.ValueLookup {
		if e.Code == nil {
			continue
		}
		covered := false
		for _, r := range ranges {
			if r.Covers(*e.Code) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		key := record.FormatCode(e.Code)
		it := codebook.Violation(d.Ref.Field("value_lookup").Field(key),
			fmt.Sprintf("lookup key %s (%q) is not covered by any value range", key, e.Label),
			"key", key, "label", e.Label)
		it.Hint = UncoveredLookupKey
		out = append(out, it)
	}
	return out
}

func onCategorical(check Check[record.CategoricalStatistics]) Check[record.Column] {
	return func(d Ctx, c record.Column) []codebook.Issue {
		s, ok := c.Statistics.(record.CategoricalStatistics)
		if !ok {
			return nil
		}
		return check(Ctx{Ctx: d.Ctx, Ref: d.Ref.Field("statistics")}, s)
	}
}

func checkCategoricalCount(d Ctx, s record.CategoricalStatistics) []codebook.Issue {
	// stats.Sum rejects empty input; an empty table sums to zero.
	total, err := stats.Sum(stats.Float64Data(s.ValueCounts.Values()))
	if err != nil {
		total = 0
	}
	if same(total, s.Count) {
		return nil
	}
	return []codebook.Issue{codebook.Violation(d.Ref.Field("value_counts"),
		fmt.Sprintf("value_counts sum to %s but count is %s", num(total), num(s.Count)),
		"sum", total, "count", s.Count)}
}

func checkTopValues(d Ctx, s record.CategoricalStatistics) []codebook.Issue {
	var out []codebook.Issue
	for i, tv := range s.TopValues {
		n, ok := s.ValueCounts.Get(tv.Value)
		if !ok || same(n, tv.Count) {
			continue
		}
		out = append(out, codebook.Violation(d.Ref.Field("top_values").Index(i).Field("count"),
			fmt.Sprintf("top value %q counts %s but value_counts has %s", tv.Value, num(tv.Count), num(n)),
			"value", tv.Value, "count", tv.Count, "value_counts", n))
	}
	return out
}

func checkResponseBudget(d Ctx, c record.Column) []codebook.Issue {
	if c.Statistics == nil {
		return nil
	}
	b := c.Statistics.Base()
	if b.TotalResponses == nil || b.Count+b.NullCount <= *b.TotalResponses {
		return nil
	}
	return []codebook.Issue{codebook.Violation(d.Ref.Field("statistics"),
		fmt.Sprintf("count %s + null_count %s exceeds total_responses %s", num(b.Count), num(b.NullCount), num(*b.TotalResponses)),
		"count", b.Count, "null_count", b.NullCount, "total_responses", *b.TotalResponses)}
}

func checkMissingCodeAccounting(d Ctx, c record.Column) []codebook.Issue {
	if c.Statistics == nil {
		return nil
	}
	b := c.Statistics.Base()
	if b.TotalResponses == nil || b.MissingCount == nil {
		return nil
	}
	if want := b.Count + *b.MissingCount; !same(want, *b.TotalResponses) {
		return []codebook.Issue{codebook.Violation(d.Ref.Field("statistics").Field("total_responses"),
			fmt.Sprintf("total_responses %s, want count + missing_count = %s", num(*b.TotalResponses), num(want)),
			"total_responses", *b.TotalResponses, "expected", want)}
	}
	return nil
}

func checkQuantileOrdering(d Ctx, c record.Column) []codebook.Issue {
	s, ok := c.Statistics.(record.NumericStatistics)
	if !ok {
		return nil
	}
	seq := []struct {
		name string
		v    *float64
	}{
		{"min", s.Min}, {"q25", s.Q25}, {"median", s.Median}, {"q75", s.Q75}, {"max", s.Max},
	}
	var out []codebook.Issue
	prev := -1
	for i, q := range seq {
		if q.v == nil {
			continue
		}
		if prev >= 0 && *q.v < *seq[prev].v {
			out = append(out, codebook.Violation(d.Ref.Field("statistics").Field(q.name),
				fmt.Sprintf("%s %s is below %s %s", q.name, num(*q.v), seq[prev].name, num(*seq[prev].v)),
				q.name, *q.v, seq[prev].name, *seq[prev].v))
		}
		prev = i
	}
	return out
}
