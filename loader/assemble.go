package loader

import (
	"context"

	codebook "github.com/reoring/codebook"
	"github.com/reoring/codebook/record"
	"github.com/reoring/codebook/rules"
)

// assemble runs the collection-wide checks and sorts entries into their
// collections, keeping input order.
func assemble(ctx context.Context, runID string, docs []Document, outs []outcome) *Result {
	res := &Result{RunID: runID}
	var columns, analyses, summaries []entry
	for i, out := range outs {
		switch docs[i].Kind {
		case KindColumns:
			columns = append(columns, out.entries...)
		case KindDemographicAnalysis:
			analyses = append(analyses, out.entries...)
		case KindFeatureImportanceSummary:
			summaries = append(summaries, out.entries...)
		default:
			for _, e := range out.entries {
				res.Unrouted = append(res.Unrouted, Report{DocumentID: e.id, Kind: docs[i].Kind, Issues: e.issues})
			}
		}
	}

	checkColumnSet(ctx, columns)
	singleton(summaries)

	res.Columns = collect[record.Column](KindColumns, columns)
	res.Analyses = collect[record.DemographicAnalysis](KindDemographicAnalysis, analyses)
	res.Summary = collect[record.FeatureImportanceSummary](KindFeatureImportanceSummary, summaries)
	return res
}

// checkColumnSet applies the rules spanning every column that passed its
// own checks.
func checkColumnSet(ctx context.Context, entries []entry) {
	var idx []int
	var set []rules.KeyedColumn
	for i, e := range entries {
		if e.notice || e.fatal() {
			continue
		}
		idx = append(idx, i)
		set = append(set, rules.KeyedColumn{Key: e.key, Column: e.value.(record.Column)})
	}
	for j, iss := range rules.CheckColumnSet(ctx, set) {
		entries[idx[j]].issues = append(entries[idx[j]].issues, iss...)
	}
}

// singleton rejects every valid summary after the first.
func singleton(entries []entry) {
	firstID := ""
	for i, e := range entries {
		if e.notice || e.fatal() {
			continue
		}
		if firstID == "" {
			firstID = e.id
			continue
		}
		entries[i].issues = append(entries[i].issues, codebook.DuplicateDocument(codebook.Root(), firstID))
	}
}

func collect[T any](kind Kind, entries []entry) Collection[T] {
	var c Collection[T]
	for _, e := range entries {
		switch {
		case e.notice:
			c.Notices = append(c.Notices, Report{DocumentID: e.id, Kind: kind, Issues: e.issues})
		case e.fatal():
			c.Failures = append(c.Failures, Report{DocumentID: e.id, Kind: kind, Issues: e.issues})
		default:
			c.Records = append(c.Records, Validated[T]{ID: e.id, Value: e.value.(T), Warnings: e.issues.Warnings()})
		}
	}
	return c
}
