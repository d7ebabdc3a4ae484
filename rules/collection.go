package rules

import (
	"context"
	"fmt"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
)

// KeyedColumn is a validated Column together with the key it was stored
// under in its source document ("" when the document was not keyed).
type KeyedColumn struct {
	Key    string
	Column record.Column
}

// CheckColumnSet runs the rules that span a whole Column collection. The
// result is aligned with cols; each entry holds the issues of that column,
// with paths relative to the column record.
//
// HTMLNameUniqueness flags every column whose html_name repeats an earlier
// one, so the first occurrence is kept. ColumnKeyMatchesName flags columns
// stored under a key other than their sas_variable_name.
func CheckColumnSet(ctx context.Context, cols []KeyedColumn) []codebook.Issues {
	if ctx == nil {
		ctx = context.Background()
	}
	pol := codebook.PolicyFrom(ctx)
	out := make([]codebook.Issues, len(cols))

	if sev := pol.SeverityFor(HTMLNameUniqueness, codebook.Error); sev != codebook.Ignore {
		first := make(map[string]int, len(cols))
		for i, kc := range cols {
			name := kc.Column.HTMLName
			j, dup := first[name]
			if !dup {
				first[name] = i
				continue
			}
			it := codebook.Violation(codebook.Root().Field("html_name"),
				fmt.Sprintf("html_name %q already used by %s", name, describe(cols[j])),
				"html_name", name, "first", j)
			out[i] = append(out[i], stamp(HTMLNameUniqueness, sev, []codebook.Issue{it})...)
		}
	}

	if sev := pol.SeverityFor(ColumnKeyMatchesName, codebook.Warn); sev != codebook.Ignore {
		for i, kc := range cols {
			if kc.Key == "" || kc.Key == kc.Column.SASVariableName {
				continue
			}
			it := codebook.Violation(codebook.Root().Field("sas_variable_name"),
				fmt.Sprintf("stored under key %q but sas_variable_name is %q", kc.Key, kc.Column.SASVariableName),
				"key", kc.Key, "sas_variable_name", kc.Column.SASVariableName)
			out[i] = append(out[i], stamp(ColumnKeyMatchesName, sev, []codebook.Issue{it})...)
		}
	}
	return out
}

func describe(kc KeyedColumn) string {
	if kc.Key != "" {
		return fmt.Sprintf("column %q", kc.Key)
	}
	return fmt.Sprintf("column %q", kc.Column.SASVariableName)
}
